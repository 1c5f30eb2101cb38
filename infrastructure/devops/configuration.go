package devops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SheetTab maps one dashboard tab to its published-CSV export URL.
type SheetTab struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config is the whole portal configuration. Local runs read it from the
// file named by CONFIG_FILE; deployed runs pull it from the SSM parameter.
type Config struct {
	// Store selection: "excel" reads WorkbookPath, "sheets" reads Tabs,
	// "db" mirrors into the database below.
	Store        string     `yaml:"store"`
	WorkbookPath string     `yaml:"workbookPath"`
	Tabs         []SheetTab `yaml:"tabs"`

	WorkersTable string `yaml:"workersTable"`
	LaddersTable string `yaml:"laddersTable"`

	PhotoBucket string `yaml:"photoBucket"`

	JWTSecret string `yaml:"jwtSecret"`

	Database struct {
		Host     string `yaml:"host"`
		Name     string `yaml:"name"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"database"`

	Digest struct {
		From       string   `yaml:"from"`
		Recipients []string `yaml:"recipients"`
	} `yaml:"digest"`
}

const ssmParameterName = "portalsst-config"

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// LoadConfig resolves the portal configuration once per process.
func LoadConfig(ctx context.Context) (*Config, error) {
	once.Do(func() {
		raw, err := readRawConfig(ctx)
		if err != nil {
			loadErr = err
			return
		}

		var parsed Config
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		cfg = &parsed
	})

	return cfg, loadErr
}

func readRawConfig(ctx context.Context) ([]byte, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		return raw, nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(ssmParameterName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get parameter: %w", err)
	}

	return []byte(*out.Parameter.Value), nil
}
