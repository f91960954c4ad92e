package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"ecomstore/internal/mailer"
	"ecomstore/internal/models"

	"github.com/joho/godotenv"
)

type application struct {
	errorLog  *log.Logger
	infoLog   *log.Logger
	store     *models.MongoDB
	mailer    *mailer.Mailer
	jwtSecret []byte
	uploadDir string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	addr := flag.String("addr", ":4000", "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		errorLog.Fatal("MONGO_URI environment variable not found")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		errorLog.Fatal("JWT_SECRET environment variable not found")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "ecomstore"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		errorLog.Fatal(err)
	}

	client, err := models.OpenDB(uri)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()
	infoLog.Println("Connected to database")

	app := &application{
		errorLog:  errorLog,
		infoLog:   infoLog,
		store:     models.NewMongoDB(client.Database(dbName)),
		jwtSecret: []byte(secret),
		uploadDir: uploadDir,
		mailer: mailer.New(
			os.Getenv("SMTP_HOST"),
			os.Getenv("SMTP_PORT"),
			os.Getenv("SMTP_USER"),
			os.Getenv("SMTP_PASS"),
			os.Getenv("ADMIN_EMAIL"),
			infoLog,
		),
	}

	srv := &http.Server{
		Addr:         *addr,
		ErrorLog:     errorLog,
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	infoLog.Printf("Starting API server on %s", *addr)
	err = srv.ListenAndServe()
	errorLog.Fatal(err)
}
