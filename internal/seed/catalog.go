package seed

// jobTemplate is one entry of the fixed job catalog. Generated jobs cycle
// through the catalog in order.
type jobTemplate struct {
	Title       string
	Description string
	Skills      []string
}

var jobCatalog = []jobTemplate{
	{
		Title:       "Frontend Developer",
		Description: "Build and maintain user-facing features across the hiring product.",
		Skills:      []string{"React", "TypeScript", "CSS"},
	},
	{
		Title:       "Backend Developer",
		Description: "Design APIs and data models powering the candidate pipeline.",
		Skills:      []string{"Go", "PostgreSQL", "REST"},
	},
	{
		Title:       "Fullstack Engineer",
		Description: "Own features end to end, from schema to screen.",
		Skills:      []string{"React", "Node.js", "SQL"},
	},
	{
		Title:       "Product Designer",
		Description: "Shape the recruiter and candidate experience.",
		Skills:      []string{"Figma", "Prototyping", "User Research"},
	},
	{
		Title:       "DevOps Engineer",
		Description: "Keep builds, deploys, and environments fast and boring.",
		Skills:      []string{"Kubernetes", "Terraform", "CI/CD"},
	},
	{
		Title:       "QA Engineer",
		Description: "Guard release quality with automated and exploratory testing.",
		Skills:      []string{"Test Automation", "Playwright", "API Testing"},
	},
	{
		Title:       "Data Scientist",
		Description: "Turn pipeline data into hiring insights.",
		Skills:      []string{"Python", "SQL", "Statistics"},
	},
	{
		Title:       "Mobile Developer",
		Description: "Ship the candidate app on iOS and Android.",
		Skills:      []string{"Swift", "Kotlin", "React Native"},
	},
	{
		Title:       "Project Manager",
		Description: "Coordinate delivery across hiring squads.",
		Skills:      []string{"Agile", "Roadmapping", "Stakeholder Management"},
	},
	{
		Title:       "Technical Writer",
		Description: "Document the product and its integrations.",
		Skills:      []string{"Documentation", "Markdown", "API Reference"},
	},
}

var firstNames = []string{
	"Alice", "Bob", "Carol", "David", "Eve", "Frank", "Grace", "Hank", "Ivy",
	"Jack", "Kathy", "Leo", "Mia", "Noah", "Olivia", "Paul", "Quinn", "Ruth",
	"Sam", "Tina", "Uma", "Viktor", "Wendy", "Xavier", "Yara", "Zack",
}

var lastNames = []string{
	"Johnson", "Smith", "Brown", "Lee", "Taylor", "Davis", "Clark", "Lewis",
	"Walker", "Hall", "Young", "King", "Wright",
}

// bankQuestion is a question template before it gets an id.
type bankQuestion struct {
	Text    string
	Options []string
	Answer  int
}

// questionBanks maps a catalog title to its question pool. Titles without a
// bank fall back to defaultBank.
var questionBanks = map[string][]bankQuestion{
	"Frontend Developer": {
		{Text: "React is a?", Options: []string{"Library", "Framework", "Language"}, Answer: 0},
		{Text: "useState returns?", Options: []string{"value only", "value and setter", "setter only"}, Answer: 1},
		{Text: "Keys help with?", Options: []string{"Styles", "Reconciliation", "Routing"}, Answer: 1},
		{Text: "Flex axis controlled by?", Options: []string{"flex-direction", "justify-items", "position"}, Answer: 0},
		{Text: "Specificity order?", Options: []string{"id > class > element", "class > id > element", "element > id > class"}, Answer: 0},
		{Text: "Semantic tag for navigation?", Options: []string{"nav", "div", "section"}, Answer: 0},
		{Text: "Accessible image needs?", Options: []string{"alt", "style", "data-id"}, Answer: 0},
		{Text: "typeof null?", Options: []string{"object", "null", "undefined"}, Answer: 0},
		{Text: "Spread on arrays does?", Options: []string{"copies items", "binds this", "sorts"}, Answer: 0},
		{Text: "Media query keyword?", Options: []string{"@media", "@query", "@screen"}, Answer: 0},
	},
	"Backend Developer": {
		{Text: "HTTP status for created resource?", Options: []string{"200", "201", "204"}, Answer: 1},
		{Text: "Idempotent method?", Options: []string{"PUT", "POST", "PATCH"}, Answer: 0},
		{Text: "Primary key must be?", Options: []string{"unique", "indexed text", "nullable"}, Answer: 0},
		{Text: "N+1 problem concerns?", Options: []string{"queries", "threads", "caches"}, Answer: 0},
		{Text: "JWT stands for?", Options: []string{"JSON Web Token", "Java Web Tool", "Joined Web Transfer"}, Answer: 0},
		{Text: "SQL JOIN keeping all left rows?", Options: []string{"LEFT JOIN", "INNER JOIN", "CROSS JOIN"}, Answer: 0},
		{Text: "REST resource naming prefers?", Options: []string{"nouns", "verbs", "adjectives"}, Answer: 0},
		{Text: "Transactions guarantee?", Options: []string{"ACID", "CAP", "DNS"}, Answer: 0},
		{Text: "Index speeds up?", Options: []string{"reads", "writes", "deletes only"}, Answer: 0},
		{Text: "Pagination avoids?", Options: []string{"huge payloads", "status codes", "headers"}, Answer: 0},
	},
	"DevOps Engineer": {
		{Text: "Kubernetes unit of deployment?", Options: []string{"Pod", "VM", "Socket"}, Answer: 0},
		{Text: "Terraform manages?", Options: []string{"infrastructure", "styles", "payroll"}, Answer: 0},
		{Text: "CI runs on?", Options: []string{"every change", "release day", "never"}, Answer: 0},
		{Text: "Blue-green deploys reduce?", Options: []string{"downtime", "disk", "DNS"}, Answer: 0},
		{Text: "Container images are?", Options: []string{"immutable", "editable in place", "per-user"}, Answer: 0},
		{Text: "Secrets belong in?", Options: []string{"a secret store", "the repo", "logs"}, Answer: 0},
		{Text: "Rollback needs?", Options: []string{"versioned artifacts", "luck", "sudo"}, Answer: 0},
		{Text: "Monitoring golden signal?", Options: []string{"latency", "font size", "tabs"}, Answer: 0},
	},
	"Data Scientist": {
		{Text: "Median is robust to?", Options: []string{"outliers", "sample size", "units"}, Answer: 0},
		{Text: "Overfitting means?", Options: []string{"memorizing noise", "too few features", "fast training"}, Answer: 0},
		{Text: "p-value measures?", Options: []string{"evidence against null", "effect size", "truth"}, Answer: 0},
		{Text: "Train/test split prevents?", Options: []string{"leakage", "sampling", "joins"}, Answer: 0},
		{Text: "Correlation implies?", Options: []string{"association", "causation", "error"}, Answer: 0},
		{Text: "SQL GROUP BY produces?", Options: []string{"aggregates", "rows unchanged", "indexes"}, Answer: 0},
		{Text: "A/B tests compare?", Options: []string{"variants", "databases", "servers"}, Answer: 0},
		{Text: "Normalization rescales?", Options: []string{"features", "labels only", "nothing"}, Answer: 0},
	},
}

// defaultBank covers catalog titles without a dedicated bank.
var defaultBank = []bankQuestion{
	{Text: "Standups should be?", Options: []string{"short", "hour-long", "weekly"}, Answer: 0},
	{Text: "A blocker should be raised?", Options: []string{"immediately", "at review", "never"}, Answer: 0},
	{Text: "Good documentation is?", Options: []string{"current", "long", "private"}, Answer: 0},
	{Text: "Feedback works best when?", Options: []string{"specific", "vague", "delayed"}, Answer: 0},
	{Text: "Estimates are?", Options: []string{"forecasts", "promises", "deadlines"}, Answer: 0},
	{Text: "Scope creep is handled by?", Options: []string{"re-planning", "silence", "overtime"}, Answer: 0},
	{Text: "Retrospectives improve?", Options: []string{"process", "salaries", "fonts"}, Answer: 0},
	{Text: "Priorities come from?", Options: []string{"impact and effort", "alphabet", "seniority"}, Answer: 0},
}

// Levels generated for each job, in order.
var assessmentLevels = []string{"Beginner", "Intermediate", "Advanced"}
