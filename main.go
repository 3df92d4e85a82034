package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/playlistx/photoboothbackend/assets"
	"github.com/playlistx/photoboothbackend/booth"
	"github.com/playlistx/photoboothbackend/bridge"
	"github.com/playlistx/photoboothbackend/config"
	"github.com/playlistx/photoboothbackend/database"
	"github.com/playlistx/photoboothbackend/handlers"
	"github.com/playlistx/photoboothbackend/media"
	"github.com/playlistx/photoboothbackend/printer"
	"github.com/playlistx/photoboothbackend/realtime"
	"github.com/playlistx/photoboothbackend/repository"
	"github.com/playlistx/photoboothbackend/services/aigen"
	"github.com/playlistx/photoboothbackend/services/bucket"
	"github.com/playlistx/photoboothbackend/services/mailer"
	"github.com/playlistx/photoboothbackend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.PhotosPath, cfg.ExportsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	// one booth process per data directory; a second instance would corrupt
	// the capture state and double-print
	dataLock := flock.New(filepath.Join(cfg.DataPath, "booth.lock"))
	locked, err := dataLock.TryLock()
	if err != nil {
		log.Fatalf("FATAL: Failed to acquire data directory lock: %v", err)
	}
	if !locked {
		log.Fatalf("FATAL: Another booth instance is already using %s", cfg.DataPath)
	}
	defer dataLock.Unlock()

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.MigrateSchema(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}

	photoStore, err := media.NewPhotoStore(cfg.PhotosPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize photo store: %v", err)
	}

	resolver, err := assets.NewResolver(cfg.AssetsPath, cfg.AssetsDevURL)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize asset resolver: %v", err)
	}

	fonts, err := media.LoadCaptionFonts(cfg.CaptionFontPath, cfg.CaptionBoldPath, 36)
	if err != nil {
		log.Fatalf("FATAL: Failed to load caption fonts: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	compositor := media.NewCompositor(resolver, fonts, rng)
	previewRenderer := media.NewPreviewRenderer(fonts)

	resultRepo := repository.NewPhotoResultRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	log.Printf("Initializing print worker pool (Workers: %d, Queue Size: %d)...", cfg.NumPrintWorkers, cfg.PrintQueueSize)
	printQueue := workers.NewPrintQueue(
		printer.New(cfg.PrinterName, cfg.ExportsPath, printer.ExecRunner),
		cfg.PrintQueueSize,
		cfg.NumPrintWorkers,
	)
	defer printQueue.Stop()

	boothBridge := bridge.New(photoStore, resultRepo, printQueue)

	hub := realtime.NewHub()
	go hub.Run()

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing photos in: %s", cfg.PhotosPath)
	log.Printf("Printing to device: %s", cfg.PrinterName)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{cfg.KioskOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Operator-Passcode"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(corsHandler.Handler)

	boothHandler := &handlers.BoothHandler{
		Sessions:   booth.NewSessionManager(),
		Camera:     booth.NewGocvCamera(cfg.CameraDeviceID),
		Clock:      booth.RealClock,
		Compositor: compositor,
		Preview:    previewRenderer,
		PhotoStore: photoStore,
		Bridge:     boothBridge,
		Hub:        hub,
	}
	bridgeHandler := &handlers.BridgeHandler{Bridge: boothBridge}
	resultsHandler := &handlers.ResultsHandler{Results: resultRepo, Hub: hub}

	r.Route("/api", func(r chi.Router) {
		r.Route("/booth", func(r chi.Router) {
			r.Post("/session", boothHandler.StartSession)
			r.Post("/user-info", boothHandler.SetUserInfo)
			r.Post("/selection", boothHandler.SetSelection)
			r.Post("/camera/start", boothHandler.StartCamera)
			r.Post("/capture", boothHandler.Capture)
			r.Post("/retake", boothHandler.Retake)
			r.Post("/advance", boothHandler.Advance)
			r.Get("/status", boothHandler.Status)
			r.Post("/composite", boothHandler.Composite)
			r.Post("/reset", boothHandler.Reset)
		})

		r.Route("/bridge", func(r chi.Router) {
			r.Post("/save-file", bridgeHandler.SaveFile)
			r.Get("/results", bridgeHandler.ListResults)
			r.Get("/results/{id}", bridgeHandler.GetResult)
			r.Post("/print", bridgeHandler.Print)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(handlers.RequireOperator(cfg.OperatorPasscodeHash))
			r.Get("/results", resultsHandler.List)
			r.Get("/results/export", resultsHandler.ExportCSV)
			r.Post("/navigate/data", resultsHandler.NavigateData)
			r.Post("/navigate/home", resultsHandler.NavigateHome)
		})

		registerWebRoutes(r, cfg, submissionRepo)
		registerGenerateRoute(r, cfg)

		r.Get("/frames", handlers.FrameList(resolver))

		r.Get("/photos/*", handlers.PhotoServer(photoStore.BasePath(), "/api/photos/"))
		log.Printf("Registered photo server at /api/photos/*")
	})

	r.Get("/ws", hub.ServeWS)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// registerWebRoutes mounts the public submission flow when the bucket and
// mailer are configured. A booth running offline simply runs without them.
func registerWebRoutes(r chi.Router, cfg config.Config, submissions repository.SubmissionRepository) {
	bucketClient, err := bucket.New(cfg.BucketBaseURL, cfg.BucketKey, cfg.BucketName)
	if err != nil {
		log.Printf("Warning: Web submission routes disabled: %v", err)
		return
	}
	mailerClient, err := mailer.New(cfg.MailerBaseURL, cfg.MailerKey, cfg.MailerFrom)
	if err != nil {
		log.Printf("Warning: Web submission routes disabled: %v", err)
		return
	}

	photoHandler := &handlers.PhotoHandler{
		Bucket:      bucketClient,
		Mailer:      mailerClient,
		Submissions: submissions,
	}
	r.Route("/photo", func(r chi.Router) {
		r.Use(handlers.RequireClientKey(cfg.APIClientKey))
		r.Post("/submit", photoHandler.SubmitPhoto)
	})
	log.Printf("Registered web submission routes at /api/photo")
}

// registerGenerateRoute mounts the AI portrait proxy when a token is
// configured.
func registerGenerateRoute(r chi.Router, cfg config.Config) {
	generator, err := aigen.New(cfg.AIBaseURL, cfg.AIToken, cfg.AIModel)
	if err != nil {
		log.Printf("Warning: AI generation route disabled: %v", err)
		return
	}
	bucketClient, err := bucket.New(cfg.BucketBaseURL, cfg.BucketKey, cfg.BucketName)
	if err != nil {
		log.Printf("Warning: AI generation route disabled: %v", err)
		return
	}

	generateHandler := &handlers.AIGenerateHandler{
		Generator: generator,
		Bucket:    bucketClient,
		Templates: cfg.AITemplate,
		Prompts:   cfg.AIPrompt,
	}
	r.Post("/generate", generateHandler.Generate)
	log.Printf("Registered AI generation route at /api/generate")
}
