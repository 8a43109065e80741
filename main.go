package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the configuration file (JSON or YAML)")
	bookingURL := flag.String("url", "", "booking widget URL (overrides the configuration)")
	headed := flag.Bool("headed", false, "run with a visible browser window and keep it open")
	debug := flag.Bool("debug", false, "enable debug logging")
	dryRun := flag.Bool("dry-run", false, "walk the flow but stop before submitting")
	startAt := flag.String("at", "", "delay the run until this time (e.g. \"2026-09-01 09:00\" or \"09:00\")")
	flag.Parse()

	if err := InitLocale(); err != nil {
		fmt.Printf("Warning: locale init failed: %v\n", err)
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if *bookingURL != "" {
		config.BookingURL = *bookingURL
	}
	if *headed || os.Getenv("HEADED") == "1" {
		config.Headless = false
		config.KeepBrowserOpen = true
	}
	if *debug {
		config.DebugMode = true
	}
	if *dryRun {
		config.DryRun = true
	}
	if *startAt != "" {
		config.RunAt = *startAt
	}

	if config.BookingURL == "" {
		log.Fatalf("No booking URL configured (set bookingUrl in %s or pass -url)", *configPath)
	}

	fmt.Println("==========================================")
	fmt.Println("  Tavolo - reservation bot")
	fmt.Println("==========================================")
	fmt.Printf("Target: %s\n", config.BookingURL)
	if r := config.Reservation; r != nil {
		fmt.Printf("Reservation: %s %s, party of %d\n", r.Date, r.Time, r.PartySize)
	}
	if config.DryRun {
		fmt.Println(T("dry_run_mode"))
	}
	fmt.Println("==========================================")

	auto := NewAutomation(config)
	defer auto.Close()

	if err := auto.setupBrowser(); err != nil {
		log.Fatalf("Browser error: %v", err)
	}

	if err := WaitForStart(config); err != nil {
		log.Fatalf("Schedule error: %v", err)
	}

	if err := RunBooking(auto, config); err != nil {
		log.Fatalf("Booking error: %v", err)
	}

	fmt.Println(T("done"))

	if config.KeepBrowserOpen {
		const holdSeconds = 300
		fmt.Println(T("keeping_browser_open", holdSeconds))
		time.Sleep(holdSeconds * time.Second)
	}
}
