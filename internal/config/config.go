package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting, sourced from environment variables.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8000"`

	Neo4jURI      string `envconfig:"NEO4J_URI" default:"bolt://localhost:7687"`
	Neo4jUser     string `envconfig:"NEO4J_USER" default:"neo4j"`
	Neo4jPassword string `envconfig:"NEO4J_PASSWORD"`

	PubMedBaseURL string `envconfig:"PUBMED_BASE_URL" default:"https://eutils.ncbi.nlm.nih.gov/entrez/eutils"`
	PubMedAPIKey  string `envconfig:"PUBMED_API_KEY"`
	PubMedEmail   string `envconfig:"PUBMED_EMAIL"`
	PubMedTool    string `envconfig:"PUBMED_TOOL" default:"bioscan"`

	NERProvider string `envconfig:"NER_PROVIDER" default:"huggingface"`
	NERModel    string `envconfig:"NER_MODEL" default:"alvaroalon2/biobert_chemical_ner"`
	NERBaseURL  string `envconfig:"NER_BASE_URL" default:"https://api-inference.huggingface.co"`
	NERAPIKey   string `envconfig:"NER_API_KEY"`

	ScanLimit   int    `envconfig:"SCAN_LIMIT" default:"50"`
	LexiconPath string `envconfig:"LEXICON_PATH"`

	// Scheduled rescans of known targets. Disabled when either is empty.
	CronSchedule   string   `envconfig:"CRON_SCHEDULE"`
	WatchedTargets []string `envconfig:"WATCHED_TARGETS"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
