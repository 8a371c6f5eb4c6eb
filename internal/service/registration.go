package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/i18n"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
	passwordMaxBytes  = 72
)

// ruleViolation 带文案 key 的校验失败，errors.Is 可匹配到对应的哨兵错误
type ruleViolation struct {
	sentinel error
	key      string
	args     []interface{}
}

func (v ruleViolation) Error() string {
	return v.sentinel.Error() + ": " + v.key
}

func (v ruleViolation) Unwrap() error {
	return v.sentinel
}

// Key 返回文案 key
func (v ruleViolation) Key() string {
	return v.key
}

// Args 返回文案参数
func (v ruleViolation) Args() []interface{} {
	return v.args
}

func weakPassword(key string, args ...interface{}) error {
	return ruleViolation{sentinel: ErrWeakPassword, key: key, args: args}
}

// charClass 密码字符类别位图
type charClass uint8

const (
	classUpper charClass = 1 << iota
	classLower
	classDigit
	classSymbol
)

func classify(password string) charClass {
	var seen charClass
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			seen |= classUpper
		case unicode.IsLower(r):
			seen |= classLower
		case unicode.IsDigit(r):
			seen |= classDigit
		default:
			seen |= classSymbol
		}
	}
	return seen
}

// credentialRules 注册与改密共用的凭据规则
type credentialRules struct {
	policy config.PasswordPolicyConfig
}

func newCredentialRules(cfg *config.Config) credentialRules {
	if cfg == nil {
		return credentialRules{}
	}
	return credentialRules{policy: cfg.Security.PasswordPolicy}
}

// checkPassword 校验密码强度，identities 为不允许与密码相同的用户名或邮箱前缀
func (r credentialRules) checkPassword(password string, identities ...string) error {
	if len(password) > passwordMaxBytes {
		return weakPassword("error.password_max_length", passwordMaxBytes)
	}
	if r.policy.MinLength > 0 && utf8.RuneCountInString(password) < r.policy.MinLength {
		return weakPassword("error.password_min_length", r.policy.MinLength)
	}

	seen := classify(password)
	required := []struct {
		enabled bool
		class   charClass
		key     string
	}{
		{r.policy.RequireUpper, classUpper, "error.password_require_upper"},
		{r.policy.RequireLower, classLower, "error.password_require_lower"},
		{r.policy.RequireNumber, classDigit, "error.password_require_number"},
		{r.policy.RequireSpecial, classSymbol, "error.password_require_special"},
	}
	for _, rule := range required {
		if rule.enabled && seen&rule.class == 0 {
			return weakPassword(rule.key)
		}
	}

	lowered := strings.ToLower(password)
	for _, identity := range identities {
		if identity != "" && lowered == strings.ToLower(identity) {
			return weakPassword("error.password_matches_identity")
		}
	}
	return nil
}

// checkUsername 校验用户名：3-50 个字符，仅字母、数字与 . _ -
func checkUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", ErrUsernameRequired
	}
	length := utf8.RuneCountInString(username)
	if length < usernameMinLength || length > usernameMaxLength {
		return "", ruleViolation{
			sentinel: ErrUsernameInvalid,
			key:      "error.username_length",
			args:     []interface{}{usernameMinLength, usernameMaxLength},
		}
	}
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			continue
		}
		return "", ruleViolation{sentinel: ErrUsernameInvalid, key: "error.username_charset"}
	}
	return username, nil
}

// normalizeRegistration 校验并规范化注册参数
func (r credentialRules) normalizeRegistration(input RegisterInput) (RegisterInput, error) {
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return input, err
	}
	username, err := checkUsername(input.Username)
	if err != nil {
		return input, err
	}
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}
	if err := r.checkPassword(input.Password, username, localPart, email); err != nil {
		return input, err
	}
	return RegisterInput{
		Username: username,
		Email:    email,
		Password: input.Password,
		Name:     strings.TrimSpace(input.Name),
		LastName: strings.TrimSpace(input.LastName),
		Address:  strings.TrimSpace(input.Address),
		Phone:    strings.TrimSpace(input.Phone),
		Locale:   i18n.NormalizeLocale(input.Locale),
	}, nil
}
