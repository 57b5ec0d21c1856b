// Package config provides configuration management for bucketeer.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: driver, endpoint, credentials, region and multipart part size
//   - Log: Logging level and format
//
// Every section is checked against its `validate` tags after loading, so a
// bad driver name or a secret key without an access key fails at startup.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Endpoint)
package config
