package config

// ExampleConfig returns a configuration with example values for use with `buildtrain init`
func ExampleConfig() *Config {
	return &Config{
		App: AppConfig{
			Identifier: "env(FASTLANE_APP_IDENTIFIER:-com.example.myapp)",
		},
		Account: AccountConfig{
			Username: "env(ITUNESCONNECT_USER)",
		},
		Publish: PublishConfig{
			Dotenv: "build.env",
		},
	}
}
