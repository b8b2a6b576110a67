package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvGetter abstracts environment variable access for tests.
type EnvGetter interface {
	Getenv(key string) string
}

// osEnvGetter é a implementação padrão usando os.Getenv.
type osEnvGetter struct{}

func (osEnvGetter) Getenv(key string) string {
	return os.Getenv(key)
}

// LoadConfig reads the invocation configuration from the process
// environment. Validation is deferred to Config.Validate so the caller
// decides when missing values become fatal.
func LoadConfig() *types.Config {
	return LoadConfigWithEnv(osEnvGetter{})
}

// LoadConfigWithEnv loads config using the provided EnvGetter.
func LoadConfigWithEnv(env EnvGetter) *types.Config {
	return &types.Config{
		SlackBotToken:         env.Getenv(types.EnvSlackBotToken),
		SlackChannelID:        env.Getenv(types.EnvSlackChannelID),
		MemberAccountRoleName: env.Getenv(types.EnvMemberAccountRoleName),
		MemberAccounts:        splitAccounts(env.Getenv(types.EnvMemberAccounts)),
		AccountNames:          map[string]string{},
	}
}

// splitAccounts divide a lista separada por vírgulas, descartando
// entradas em branco. A ordem é preservada e duplicatas são mantidas.
func splitAccounts(raw string) []string {
	var accounts []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			accounts = append(accounts, id)
		}
	}
	return accounts
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// accountNamesFile é o formato do arquivo de mapeamento de nomes.
type accountNamesFile struct {
	Accounts map[string]string `json:"accounts" yaml:"accounts" toml:"accounts"`
}

// LoadAccountNames carrega o mapeamento ID de conta -> nome a partir de
// um arquivo TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadAccountNames(filePath string) (map[string]string, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing account names file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading account names file: %w", err)
	}

	var names accountNamesFile

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &names); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &names); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &names); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported account names file format: %s", fileExtension)
	}

	if names.Accounts == nil {
		names.Accounts = map[string]string{}
	}

	return names.Accounts, nil
}
