package scoring

// skillVocabulary is the fixed list of technical and soft skill terms both
// rubrics recognize. Multi-word entries match as whole phrases. Order matters:
// missing skills are reported in vocabulary order, not relevance order.
var skillVocabulary = []string{
	// languages
	"javascript", "typescript", "python", "java", "c++", "c#", "golang", "go",
	"ruby", "php", "swift", "kotlin", "rust", "scala",
	// frontend
	"react", "angular", "vue", "next.js", "html", "css", "tailwind",
	"bootstrap", "redux",
	// backend
	"node.js", "express", "django", "flask", "spring", "rails", "laravel",
	"rest api", "graphql", "grpc", "microservices",
	// data stores
	"mongodb", "mysql", "postgresql", "sql", "sqlite", "redis",
	"elasticsearch", "kafka",
	// cloud / infra
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
	"ci/cd", "git", "linux",
	// data / ml
	"machine learning", "deep learning", "data analysis", "data science",
	"nlp", "pandas", "numpy", "tensorflow", "pytorch", "power bi", "tableau",
	"excel",
	// mobile
	"android", "ios", "flutter", "react native",
	// design / qa
	"figma", "ui/ux", "selenium", "cypress", "junit", "testing",
	// soft skills
	"agile", "scrum", "communication", "leadership", "teamwork",
	"problem solving", "time management",
}

// Section keyword roots. A resume "has" a section when any keyword appears.
var (
	experienceKeywords = []string{
		"experience", "work history", "employment", "responsibilities",
		"worked at", "professional background",
	}
	projectKeywords = []string{
		"projects", "portfolio", "github", "personal project",
	}
	internshipKeywords = []string{
		"internship", "intern", "trainee",
	}
	educationKeywords = []string{
		"education", "degree", "university", "college", "bachelor", "master",
		"b.tech", "b.e", "m.tech", "bca", "mca", "b.sc", "m.sc",
	}
	certificationKeywords = []string{
		"certification", "certified", "certificate", "award", "achievement",
		"hackathon", "winner",
	}
)
