package main

import (
	"context"
	"log"
	"os"

	"bookcatalog/internal/book"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var sampleBooks = []book.CreateBookForm{
	{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Publisher: "Addison-Wesley", Price: 4200, ISBN: "978-0-13-419044-0"},
	{Title: "Learning Go", Author: "Jon Bodner", Publisher: "O'Reilly Media", Price: 5060, ISBN: "978-1-492-07721-3"},
	{Title: "The Rust Programming Language", Author: "Steve Klabnik", Publisher: "No Starch Press", Price: 4980, ISBN: "978-1-7185-0310-6"},
	{Title: "Programming Rust", Author: "Jim Blandy", Publisher: "O'Reilly Media", Price: 6820, ISBN: "978-1-492-05259-3"},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Publisher: "O'Reilly Media", Price: 5720, ISBN: "978-1-449-37332-0"},
	{Title: "The Pragmatic Programmer", Author: "David Thomas", Publisher: "Addison-Wesley", Price: 5280, ISBN: "978-0-13-595705-9"},
	{Title: "Clean Architecture", Author: "Robert C. Martin", Publisher: "Prentice Hall", Price: 3960, ISBN: "978-0-13-449416-6"},
	{Title: "Database Internals", Author: "Alex Petrov", Publisher: "O'Reilly Media", Price: 6160, ISBN: "978-1-492-04034-7"},
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := book.NewPostgresRepo(pool)
	for _, form := range sampleBooks {
		created, err := repo.Create(ctx, form)
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", form.Title, err)
		}
		log.Printf("seeded id=%d title=%q", created.ID, created.Title)
	}
	log.Printf("Seeded %d books", len(sampleBooks))
}
