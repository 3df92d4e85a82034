package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPhotosSubDir  = "photos"
	DefaultExportsSubDir = "exports"
)

const (
	defaultPrintQueueSize  = 32
	defaultNumPrintWorkers = 1
	defaultCameraDeviceID  = 0
)

type Config struct {
	// data storage configuration
	DataPath     string // primary root for everything the booth writes
	PhotosPath   string // full-calculated path for final photos
	ExportsPath  string // full-calculated path for PDF/CSV exports
	DatabasePath string

	// template/frame assets
	AssetsPath      string // packaged assets directory (frames, templates)
	AssetsDevURL    string // optional dev-server base URL overriding AssetsPath
	CaptionFontPath string // TTF used for caption text
	CaptionBoldPath string // TTF used for caption category labels

	// capture settings
	CameraDeviceID int

	// print settings
	PrinterName     string
	PrintQueueSize  int
	NumPrintWorkers int

	// API surface
	APIClientKey         string // bearer key required by the web routes
	OperatorPasscodeHash string // bcrypt hash guarding the results/data endpoints
	KioskOrigin          string // allowed CORS origin for the kiosk UI

	// AI generation provider
	AIBaseURL  string
	AIToken    string
	AIModel    string
	AITemplate map[string]string // theme -> template image URL
	AIPrompt   map[string]string // theme -> generation prompt

	// storage bucket (public photo hosting)
	BucketBaseURL string
	BucketKey     string
	BucketName    string

	// transactional mail
	MailerBaseURL string
	MailerKey     string
	MailerFrom    string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dataPath := getEnvOrDefault("DATA_PATH", filepath.Join(".", "booth_data"))
	absDataPath, err := filepath.Abs(dataPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for data directory '%s': %w", dataPath, err)
	}

	photosSubDir := getEnvOrDefault("PHOTOS_SUBDIR", DefaultPhotosSubDir)
	absPhotosPath := filepath.Join(absDataPath, photosSubDir)

	exportsSubDir := getEnvOrDefault("EXPORTS_SUBDIR", DefaultExportsSubDir)
	absExportsPath := filepath.Join(absDataPath, exportsSubDir)

	dbPath := getEnvOrDefault("DATABASE_PATH", filepath.Join(absDataPath, "photobooth.db"))

	assetsPath := getEnvOrDefault("ASSETS_PATH", filepath.Join(".", "assets_static"))
	absAssetsPath, err := filepath.Abs(assetsPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for assets directory '%s': %w", assetsPath, err)
	}

	cfg := Config{
		DataPath:     absDataPath,
		PhotosPath:   absPhotosPath,
		ExportsPath:  absExportsPath,
		DatabasePath: dbPath,

		AssetsPath:      absAssetsPath,
		AssetsDevURL:    os.Getenv("ASSETS_DEV_URL"),
		CaptionFontPath: getEnvOrDefault("CAPTION_FONT_PATH", filepath.Join(absAssetsPath, "fonts", "caption.ttf")),
		CaptionBoldPath: getEnvOrDefault("CAPTION_BOLD_FONT_PATH", filepath.Join(absAssetsPath, "fonts", "caption-bold.ttf")),

		CameraDeviceID: getEnvIntOrDefault("CAMERA_DEVICE_ID", defaultCameraDeviceID),

		PrinterName:     getEnvOrDefault("PRINTER_NAME", "DS-RX1"),
		PrintQueueSize:  getEnvIntOrDefault("PRINT_QUEUE_SIZE", defaultPrintQueueSize),
		NumPrintWorkers: getEnvIntOrDefault("NUM_PRINT_WORKERS", defaultNumPrintWorkers),

		APIClientKey:         os.Getenv("API_CLIENT_KEY"),
		OperatorPasscodeHash: os.Getenv("OPERATOR_PASSCODE_HASH"),
		KioskOrigin:          getEnvOrDefault("KIOSK_ORIGIN", "http://localhost:5173"),

		AIBaseURL: getEnvOrDefault("AI_BASE_URL", "https://api.replicate.com"),
		AIToken:   os.Getenv("AI_API_TOKEN"),
		AIModel:   getEnvOrDefault("AI_MODEL", "google/nano-banana-pro"),
		AITemplate: map[string]string{
			"pitcrew": os.Getenv("RACING_TEMPLATE_PITCREW_URL"),
			"motogp":  os.Getenv("RACING_TEMPLATE_MOTOGP_URL"),
			"f1":      os.Getenv("RACING_TEMPLATE_F1_URL"),
		},
		AIPrompt: map[string]string{
			"pitcrew": os.Getenv("RACING_PROMPT_PITCREW"),
			"motogp":  os.Getenv("RACING_PROMPT_MOTOGP"),
			"f1":      os.Getenv("RACING_PROMPT_F1"),
		},

		BucketBaseURL: os.Getenv("BUCKET_BASE_URL"),
		BucketKey:     os.Getenv("BUCKET_SERVICE_KEY"),
		BucketName:    getEnvOrDefault("BUCKET_NAME", "photobooth-bucket"),

		MailerBaseURL: getEnvOrDefault("MAILER_BASE_URL", "https://api.resend.com"),
		MailerKey:     os.Getenv("MAILER_API_KEY"),
		MailerFrom:    getEnvOrDefault("MAILER_FROM", "Photobooth <photobooth@playlistx.example>"),
	}

	return cfg, nil
}
