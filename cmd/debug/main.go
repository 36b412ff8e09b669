package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/akvaristik/aquamon/db"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var dbPath, command string
	var target float64
	var volume int
	flag.StringVar(&dbPath, "db", "aquamon.db", "Path to the SQLite database file")
	flag.StringVar(&command, "cmd", "", "Command to run: show-settings, set-target-temp, set-tank-volume")
	flag.Float64Var(&target, "target", 0, "Target temperature for set-target-temp")
	flag.IntVar(&volume, "volume", 0, "Tank volume in liters for set-tank-volume")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of aquamon-debug:")
		fmt.Println("  -db string\tPath to the SQLite database file (default 'aquamon.db')")
		fmt.Println("  -cmd string\tCommand to run: show-settings, set-target-temp, set-tank-volume")
		fmt.Println("  -target float\tTarget temperature for set-target-temp")
		fmt.Println("  -volume int\tTank volume in liters for set-tank-volume")
		fmt.Println("  -help\tShow this help message")
		os.Exit(0)
	}

	var err error
	switch command {
	case "show-settings":
		err = db.ShowSettingsCLI(dbPath)
	case "set-target-temp":
		err = db.SetSettingCLI(dbPath, "target_temp", strconv.FormatFloat(target, 'f', -1, 64))
	case "set-tank-volume":
		if volume < 1 {
			fmt.Println("Error: volume must be at least 1")
			os.Exit(1)
		}
		err = db.SetSettingCLI(dbPath, "tank_volume", strconv.Itoa(volume))
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
	fmt.Printf("Command %s completed successfully\n", command)
}
