package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env files into the process environment without overriding
// variables that are already set, then applies command line overrides.
func Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}

	return applyFlags()
}

// ApplyFlags is used when there is no .env file to read.
func ApplyFlags() error {
	return applyFlags()
}

func applyFlags() error {
	if flag.Parsed() {
		return nil
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
