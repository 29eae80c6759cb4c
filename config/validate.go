package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks struct tags and the database section. Remote credentials are
// checked separately by RemoteConfig.Validate so that commands that never talk
// to the media host (migrate) can run without them.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return translate(err)
	}

	if c.Database.Driver == "postgres" && c.Database.URL == "" {
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return errors.New("database connection not configured: set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}
	}
	return nil
}

// Validate checks that the selected provider has its credentials and a scope.
func (r RemoteConfig) Validate() error {
	if strings.TrimSpace(r.Folder) == "" {
		return errors.New("remote.folder (SYNC_FOLDER) is required")
	}

	switch r.Provider {
	case "cloudinary":
		var missing []string
		if r.CloudName == "" {
			missing = append(missing, "CLOUDINARY_CLOUD_NAME")
		}
		if r.APIKey == "" {
			missing = append(missing, "CLOUDINARY_API_KEY")
		}
		if r.APISecret == "" {
			missing = append(missing, "CLOUDINARY_API_SECRET")
		}
		if len(missing) > 0 {
			return fmt.Errorf("cloudinary credentials missing: %s", strings.Join(missing, ", "))
		}
	case "drive":
		if r.DriveCredentialsFile == "" && r.DriveCredentialsJSON == "" {
			return errors.New("drive credentials missing: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS_JSON")
		}
	default:
		return fmt.Errorf("unknown remote provider %q", r.Provider)
	}
	return nil
}

// translate flattens validator errors into one readable message.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
