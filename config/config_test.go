package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PUBLIC_BASE_URL", "http://localhost:5000/")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
}

func TestParse_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Server.PublicBaseURL)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "kilagbe", cfg.Store.MongoDB)
	assert.Equal(t, 2, cfg.App.FreeAdLimit)
	assert.Equal(t, ImageStorageLocal, cfg.Images.Storage)
	assert.Equal(t, 5, cfg.Images.MaxFiles)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Contains(t, cfg.CORS.Origins, "https://ki-lagbe-com.vercel.app")
	assert.False(t, cfg.Auth.Enabled())
}

func TestParse_ProductionDefaultsToJSONLogs(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParse_CORSOriginsAreTrimmed(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", " https://a.example/ , ,http://b.example")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "http://b.example"}, cfg.CORS.Origins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing public base url",
			env:     map[string]string{"PUBLIC_BASE_URL": ""},
			wantErr: "PUBLIC_BASE_URL is required",
		},
		{
			name:    "mongo without uri",
			env:     map[string]string{"MONGO_URI": ""},
			wantErr: "MONGO_URI is required",
		},
		{
			name:    "postgres without dsn",
			env:     map[string]string{"STORE_DRIVER": "postgres"},
			wantErr: "DB_DSN is required",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORE_DRIVER": "sqlite"},
			wantErr: "unknown STORE_DRIVER",
		},
		{
			name:    "s3 without bucket",
			env:     map[string]string{"IMAGE_STORAGE": "s3"},
			wantErr: "S3_BUCKET is required",
		},
		{
			name:    "origin without scheme",
			env:     map[string]string{"CORS_ORIGINS": "ki-lagbe-com.vercel.app"},
			wantErr: `CORS_ORIGINS entry "ki-lagbe-com.vercel.app"`,
		},
		{
			name:    "no origins",
			env:     map[string]string{"CORS_ORIGINS": " , "},
			wantErr: "CORS_ORIGINS must list at least one origin",
		},
		{
			name: "wildcard origin",
			env:  map[string]string{"CORS_ORIGINS": "*"},
		},
		{
			name:    "production without firebase",
			env:     map[string]string{"APP_ENV": "production"},
			wantErr: "FIREBASE_CREDENTIALS_PATH is required",
		},
		{
			name: "production with firebase",
			env:  map[string]string{"APP_ENV": "production", "FIREBASE_CREDENTIALS_PATH": "/etc/kilagbe/firebase.json"},
		},
		{
			name: "memory driver needs no connection string",
			env:  map[string]string{"STORE_DRIVER": "MEMORY", "MONGO_URI": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Parse()
			require.NoError(t, err)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
