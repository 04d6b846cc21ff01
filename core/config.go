package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Port            int
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine     string // postgres | sqlite
		Name       string
		Host       string
		Port       int
		User       string
		Password   string
		DisableTLS bool
	}

	// UploadConfig selects the opportunity document destination.
	// When UseS3 is unset, documents land under Destination on local disk;
	// otherwise Destination names the S3 bucket.
	UploadConfig struct {
		UseS3              bool
		Destination        string
		AWSAccessKeyID     string
		AWSSecretAccessKey string
		AWSRegion          string
	}

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Upload   UploadConfig
	}
)

func (c ServerConfig) Address() string   { return fmt.Sprintf("%s:%d", c.Host, c.Port) }
func (c DatabaseConfig) Address() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// NewConfig loads configuration from the environment with sane DEV defaults.
// A config/.env.<env> file is loaded first if it exists.
func NewConfig() *Config {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Beacon")
	v.SetDefault("build", "dev")
	v.SetDefault("frontendBaseURL", "http://localhost:8080")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8080)
	v.SetDefault("serverDebugHost", "0.0.0.0:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "beacon")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbDisableTLS", true)
	v.SetDefault("uploadS3", false)
	v.SetDefault("uploadDestination", "uploads")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         testMode,
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		WorkDir:          wd,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Port:            v.GetInt("serverPort"),
			DebugHost:       v.GetString("serverDebugHost"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("dbEngine"),
			Name:       v.GetString("dbName"),
			Host:       v.GetString("dbHost"),
			Port:       v.GetInt("dbPort"),
			User:       v.GetString("dbUser"),
			Password:   v.GetString("dbPassword"),
			DisableTLS: v.GetBool("dbDisableTLS"),
		},
		Upload: UploadConfig{
			UseS3:              v.GetBool("uploadS3"),
			Destination:        v.GetString("uploadDestination"),
			AWSAccessKeyID:     v.GetString("awsAccessKeyId"),
			AWSSecretAccessKey: v.GetString("awsSecretAccessKey"),
			AWSRegion:          v.GetString("awsRegion"),
		},
	}
}
