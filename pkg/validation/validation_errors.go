package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Job fields
	"Title":           "Job Title",
	"Description":     "Job Description",
	"Category":        "Category",
	"Location":        "Location",
	"ExperienceLevel": "Experience Level",
	"RequiredSkills":  "Required Skills",
	"Requirements":    "Requirements",
	"Tags":            "Tags",
	"Status":          "Status",

	// Candidate profile fields
	"FullName":      "Full Name",
	"Email":         "Email",
	"AboutMe":       "About Me",
	"Skills":        "Skills",
	"PrimarySkill":  "Primary Skill",
	"PreferredRole": "Preferred Role",
	"Education":     "Education",
	"ResumeKey":     "Resume",

	// Company profile fields
	"CompanyName": "Company Name",
	"Industry":    "Industry",
	"Website":     "Website",
	"About":       "About",

	// Interview scheduling fields
	"InterviewDate": "Interview Date",
	"InterviewTime": "Interview Time",
	"MeetingLink":   "Meeting Link",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: This field is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: Must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: Must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: Must be one of: %s", label, param)

	case "email":
		return fmt.Sprintf("%s: Invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: Invalid URL format", label)

	case "valid_name":
		return fmt.Sprintf("%s: Only letters, spaces, and common punctuation (. ' - /) are allowed", label)

	case "no_emoji":
		return fmt.Sprintf("%s: Emoji and special symbols are not allowed", label)

	case "dateonly":
		return fmt.Sprintf("%s: Must be a date in YYYY-MM-DD format", label)

	case "hhmm":
		return fmt.Sprintf("%s: Must be a time in HH:MM format", label)

	default:
		return fmt.Sprintf("%s: Validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
