package types

import "fmt"

// Environment variable keys required before any account processing begins.
const (
	EnvSlackBotToken         = "SLACK_BOT_TOKEN"
	EnvSlackChannelID        = "SLACK_CHANNEL_ID"
	EnvMemberAccountRoleName = "MEMBER_ACCOUNT_ROLE_NAME"
	EnvMemberAccounts        = "MEMBER_ACCOUNTS"
	EnvAccountNamesFile      = "ACCOUNT_NAMES_FILE"
)

// Config holds everything one invocation needs, validated once up front.
type Config struct {
	SlackBotToken         string
	SlackChannelID        string
	MemberAccountRoleName string

	// MemberAccounts is the ordered list of account IDs; order determines
	// report row order and duplicates are kept as-is.
	MemberAccounts []string

	// AccountNames maps account ID to a human-readable name. Loaded from
	// a deployment-time file, not hard-coded.
	AccountNames map[string]string
}

// Validate reports the first missing required value. The account-name
// mapping is allowed to be empty: unknown accounts fall back to a
// sentinel name instead of failing.
func (c *Config) Validate() error {
	switch {
	case c.SlackBotToken == "":
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvSlackBotToken)
	case c.SlackChannelID == "":
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvSlackChannelID)
	case c.MemberAccountRoleName == "":
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvMemberAccountRoleName)
	case len(c.MemberAccounts) == 0:
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvMemberAccounts)
	}
	return nil
}
