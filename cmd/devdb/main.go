package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/personafol/personafolio/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway MariaDB container for local development with the environment
variables from the .env file.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var db *helpers.Database
	go func() {
		var err error
		db, err = helpers.StartMariaDB(nil)
		if err != nil {
			log.Fatalf("Failed to create database container: %v\n", err)
		}
		log.Printf("DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s\n", db.Host, db.Port, db.Name, db.User)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	if db != nil {
		db.Terminate(nil)
	}
}
