package match

import "strings"

// skillSynonyms maps a canonical skill to terms that count as evidence
// for it in a CV.
var skillSynonyms = map[string][]string{
	// Office suite
	"excel":            {"microsoft office", "ms office", "office suite", "spreadsheet", "microsoft excel", "ms excel"},
	"word":             {"microsoft office", "ms office", "office suite", "microsoft word", "ms word"},
	"powerpoint":       {"microsoft office", "ms office", "office suite", "presentation", "microsoft powerpoint", "ppt"},
	"microsoft office": {"excel", "word", "powerpoint", "ms office", "office suite", "outlook", "office 365"},

	// Languages and runtimes
	"react":      {"react.js", "reactjs", "react js", "react native"},
	"react.js":   {"react", "reactjs", "react js"},
	"node.js":    {"nodejs", "node", "node js"},
	"nodejs":     {"node.js", "node", "node js"},
	"javascript": {"js", "ecmascript", "es6", "typescript"},
	"typescript": {"ts", "javascript"},
	"c++":        {"cpp", "c plus plus"},
	"c#":         {"csharp", "c sharp", "dotnet", ".net"},
	".net":       {"dotnet", "c#", "csharp", "asp.net"},
	"python":     {"py", "python3", "python 3"},
	"golang":     {"go"},

	// Frameworks
	"angular": {"angularjs", "angular.js", "angular 2"},
	"vue":     {"vue.js", "vuejs", "vue js", "vue 3"},
	"express": {"express.js", "expressjs"},

	// Databases
	"postgresql": {"postgres", "pg"},
	"postgres":   {"postgresql", "pg"},
	"mongodb":    {"mongo", "mongo db", "nosql"},
	"mysql":      {"mariadb", "sql"},
	"sql":        {"sql server", "mysql", "postgresql", "postgres", "database"},

	// Cloud and tooling
	"aws":        {"amazon web services", "ec2", "s3", "lambda"},
	"docker":     {"containerization", "containers", "dockerfile"},
	"kubernetes": {"k8s", "kube", "container orchestration"},
	"git":        {"github", "gitlab", "version control", "source control"},

	// Process
	"agile": {"scrum", "kanban", "sprint"},
	"scrum": {"agile", "sprint", "scrum master"},

	// Web
	"html":     {"html5"},
	"css":      {"css3", "stylesheet"},
	"rest":     {"rest api", "restful", "restful api"},
	"rest api": {"rest", "restful", "restful api"},
	"api":      {"rest", "rest api", "graphql", "web api"},

	// Design
	"photoshop":   {"adobe photoshop", "adobe creative suite"},
	"illustrator": {"adobe illustrator", "adobe creative suite"},
	"figma":       {"ui design", "ux design"},
}

// titleSkillInference maps words found in a job title to skills a holder
// of that title can be assumed to have.
var titleSkillInference = map[string][]string{
	"developer":            {"programming", "coding", "software development", "git", "debugging"},
	"full stack developer": {"javascript", "html", "css", "database", "api", "frontend", "backend", "git"},
	"frontend developer":   {"html", "css", "javascript", "responsive design", "git"},
	"backend developer":    {"api", "database", "server", "rest", "sql", "git"},
	"web developer":        {"html", "css", "javascript", "responsive design", "git"},
	"engineer":             {"problem solving", "technical analysis", "git"},
	"devops engineer":      {"docker", "kubernetes", "ci/cd", "aws", "git"},
	"data analyst":         {"sql", "excel", "data analysis", "reporting"},
	"designer":             {"figma", "ui design", "ux design"},
	"project manager":      {"agile", "scrum", "planning", "stakeholder management"},
}

// commonSkills are extracted from a CV even when not required, to enrich
// the analysis badge shown to recruiters.
var commonSkills = []string{
	"javascript", "python", "java", "react", "node.js", "sql", "html", "css",
	"typescript", "angular", "vue", "php", "ruby", "go", "rust", "c++", "c#",
	"aws", "docker", "kubernetes", "git", "mongodb", "postgresql", "mysql",
	"agile", "scrum", "api", "rest", "graphql", "microservices",
}

// languagePatterns lists the spellings that count as evidence of a
// spoken language.
var languagePatterns = map[string][]string{
	"english":    {"english", "fluent english", "native english"},
	"spanish":    {"spanish", "español", "castellano"},
	"french":     {"french", "français"},
	"german":     {"german", "deutsch"},
	"chinese":    {"chinese", "mandarin", "中文"},
	"arabic":     {"arabic", "عربي"},
	"hindi":      {"hindi", "हिंदी"},
	"portuguese": {"portuguese", "português"},
	"italian":    {"italian", "italiano"},
	"japanese":   {"japanese", "日本語"},
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

func synonymsFor(skill string) []string {
	return skillSynonyms[normalizeSkill(skill)]
}

func inferSkillsFromTitle(title string) []string {
	titleLower := strings.ToLower(title)
	var inferred []string
	for key, skills := range titleSkillInference {
		if strings.Contains(titleLower, key) {
			inferred = append(inferred, skills...)
		}
	}
	return inferred
}
