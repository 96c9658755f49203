package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        int    `yaml:"port"`
	ProjectID   string `yaml:"projectId"`
	Region      string `yaml:"region"`
	ClusterName string `yaml:"clusterName"`
	BucketName  string `yaml:"bucketName"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	Env       string `yaml:"env"`

	TracingEnabled   bool    `yaml:"tracingEnabled"`
	OTLPEndpoint     string  `yaml:"otlpEndpoint"`
	OTLPInsecure     bool    `yaml:"otlpInsecure"`
	TraceSampleRatio float64 `yaml:"traceSampleRatio"`
}

// LoadConfigOptional behaves like LoadConfig but tolerates a missing file:
// with an empty, whitespace or nonexistent path the config is built from
// environment variables and defaults alone.
func LoadConfigOptional(filePath string) (*Config, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		var c Config
		applyEnv(&c)
		applyDefaults(&c)
		return &c, nil
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		var c Config
		applyEnv(&c)
		applyDefaults(&c)
		return &c, nil
	}
	return LoadConfig(filePath)
}

func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	applyEnv(&c)
	applyDefaults(&c)

	log.Printf("Gateway Config: {Port:%d Project:%s Region:%s Cluster:%s Bucket:%s}\n",
		c.Port, c.ProjectID, c.Region, c.ClusterName, c.BucketName)
	return &c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("PROJECT_ID"); v != "" {
		c.ProjectID = v
	}
	if v := os.Getenv("REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("CLUSTER_NAME"); v != "" {
		c.ClusterName = v
	}
	if v := os.Getenv("BUCKET_NAME"); v != "" {
		c.BucketName = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		c.TracingEnabled = parseBool(v)
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		c.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		c.OTLPInsecure = parseBool(v)
	}
	if v := os.Getenv("TRACE_SAMPLE_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TraceSampleRatio = f
		}
	}
}

func applyDefaults(c *Config) {
	if c.Port == 0 {
		c.Port = 5001
	}
	if c.Region == "" {
		c.Region = "us-central1"
	}
	if c.ClusterName == "" {
		c.ClusterName = "cluster-dataproc"
	}
	if c.BucketName == "" {
		c.BucketName = "storage-dataproc-cluster-bucket"
	}
	if c.ProjectID == "" {
		log.Println("Warning: ProjectID not set (dev only)")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.TraceSampleRatio <= 0 || c.TraceSampleRatio > 1 {
		c.TraceSampleRatio = 1
	}
}

func (c *Config) Validate() error {
	var errs []string
	env := strings.ToLower(strings.TrimSpace(c.Env))
	dev := env == "dev" || env == "test"

	if strings.TrimSpace(c.ProjectID) == "" && !dev {
		errs = append(errs, "projectId is required in non-dev")
	}
	if strings.TrimSpace(c.Region) == "" {
		errs = append(errs, "region is required")
	}
	if strings.TrimSpace(c.ClusterName) == "" {
		errs = append(errs, "clusterName is required")
	}
	if strings.TrimSpace(c.BucketName) == "" {
		errs = append(errs, "bucketName is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, "port must be in 1..65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func parseBool(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	return v == "true" || v == "1" || v == "yes" || v == "y" || v == "on"
}
