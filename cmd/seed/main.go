package main

import (
	"flag"
	"log"

	"github.com/jgretton/junior-development-programme-sub000/internals/configs"
	database "github.com/jgretton/junior-development-programme-sub000/internals/databases"
	"github.com/jgretton/junior-development-programme-sub000/internals/seeds"
)

func main() {
	dir := flag.String("dir", "internals/seeds", "root folder data seed")
	migrate := flag.Bool("migrate", true, "auto migrate sebelum seed")
	flag.Parse()

	configs.LoadEnv()
	database.ConnectDB()

	if *migrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
	if err := seeds.RunAllSeeds(database.DB, *dir); err != nil {
		log.Fatalf("❌ Seed gagal: %v", err)
	}
	log.Println("✅ Seed selesai")
}
