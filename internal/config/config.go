package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Options struct {
	runAddr        string
	logLevel       string
	dataBaseDSN    string
	migrationsPath string
	allowedOrigins string
}

func NewOptions() *Options {
	return new(Options)
}

// ParseFlags handles command line arguments
// and stores their values in the corresponding variables.
func (o *Options) ParseFlags() {
	loadEnvFile()

	o.register(flag.CommandLine)

	// parse the arguments passed to the server into registered variables
	flag.Parse()
}

// register binds the options to fs, using environment values as defaults.
func (o *Options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.runAddr, "a", getEnvOrDefault("RUN_ADDRESS", ":8080"), "address and port to run server")
	fs.StringVar(&o.logLevel, "l", getEnvOrDefault("LOG_LEVEL", "info"), "log level")
	fs.StringVar(&o.dataBaseDSN, "d", getEnvOrDefault("DATABASE_URI", ""), "database connection string")
	fs.StringVar(&o.migrationsPath, "m", getEnvOrDefault("MIGRATIONS_PATH", "migrations"), "path to SQL migrations")
	fs.StringVar(&o.allowedOrigins, "o", getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"), "comma-separated CORS origins")
}

func (o *Options) RunAddr() string {
	return o.runAddr
}

func (o *Options) LogLevel() string {
	return o.logLevel
}

func (o *Options) DataBaseDSN() string {
	return o.dataBaseDSN
}

func (o *Options) MigrationsPath() string {
	return o.migrationsPath
}

// AllowedOrigins returns the trimmed, non-empty entries of the origin list.
func (o *Options) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(o.allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getEnvOrDefault reads an environment variable or returns a default value if the variable is not set or is empty.
func getEnvOrDefault(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	envPath := filepath.Join(cwd, ".env")

	// variables already set in the environment take precedence
	err = godotenv.Load(envPath)
	if err != nil {
		log.Printf("No .env file found at %s, proceeding without it", envPath)
	} else {
		log.Printf(".env file loaded from %s", envPath)
	}
}
