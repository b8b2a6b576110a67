package repository

// ConfigRepository defines the interface for loading the deployment-time
// account-name mapping file.
type ConfigRepository interface {
	LoadAccountNames(filePath string) (map[string]string, error)
}
