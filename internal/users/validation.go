package users

import (
	"net/mail"
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

const minPasswordLength = 8

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", shared.Validation("email is required", "email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", shared.Validation("email is invalid", "email")
	}
	return email, nil
}

func parseProvider(raw string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return ProviderLocal, nil
	}
	if !p.Valid() {
		return "", shared.Validation("provider must be one of local, google, github", "provider")
	}
	return p, nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.Validation("password must be at least 8 characters", "password")
	}
	return nil
}

func roleIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toAny(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

// document validates req. The password is returned separately, unhashed.
func (req CreateUserRequest) document() (docstore.Document, []string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, shared.Validation("user name is required", "name")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, nil, err
	}
	provider, err := parseProvider(req.Provider)
	if err != nil {
		return nil, nil, err
	}
	if provider == ProviderLocal {
		if err := checkPassword(req.Password); err != nil {
			return nil, nil, err
		}
	}
	roles := roleIDs(req.Roles)
	doc := docstore.Document{
		"name":     name,
		"email":    email,
		"roles":    toAny(roles),
		"provider": string(provider),
	}
	if oauthID := strings.TrimSpace(req.OAuthID); oauthID != "" {
		doc["oauth_id"] = oauthID
	}
	return doc, roles, nil
}

func (req UpdateUserRequest) changes(current docstore.Document) (docstore.Document, []string, error) {
	set := docstore.Document{}
	var roles []string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, nil, shared.Validation("user name cannot be empty", "name")
		}
		set["name"] = name
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, nil, err
		}
		set["email"] = email
	}
	if req.Password != nil {
		if err := checkPassword(*req.Password); err != nil {
			return nil, nil, err
		}
	}
	if req.Provider != nil {
		provider, err := parseProvider(*req.Provider)
		if err != nil {
			return nil, nil, err
		}
		_, hasPassword := current[passwordField].(string)
		if provider == ProviderLocal && req.Password == nil && !hasPassword {
			return nil, nil, shared.Validation("password is required for local users", "password")
		}
		set["provider"] = string(provider)
	}
	if req.OAuthID != nil {
		set["oauth_id"] = strings.TrimSpace(*req.OAuthID)
	}
	if req.Roles != nil {
		roles = roleIDs(*req.Roles)
		set["roles"] = toAny(roles)
	}
	if len(set) == 0 && req.Password == nil {
		return nil, nil, shared.Validation("no updatable field supplied")
	}
	return set, roles, nil
}
