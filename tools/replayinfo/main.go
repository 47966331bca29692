package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"ursa-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		s, err := storage.LoadFile(os.Args[2])
		if err != nil {
			fmt.Printf("Cannot read replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("level:    %s\n", s.LevelName)
		fmt.Printf("seed:     %d\n", s.Seed)
		fmt.Printf("recorded: %s\n", time.Unix(s.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("ticks:    %d\n", s.Ticks)
		fmt.Printf("actions:  %d\n", len(s.Actions))
	case "actions":
		s, err := storage.LoadFile(os.Args[2])
		if err != nil {
			fmt.Printf("Cannot read replay: %v\n", err)
			os.Exit(1)
		}
		for _, a := range s.Actions {
			fmt.Printf("%6d  %-6s %s\n", a.Tick, a.Action.String(), string(a.Payload))
		}
	case "format":
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр файлов .urrp
Commands:
  info <file.urrp>       - уровень, сид, время записи и длина
  actions <file.urrp>    - список записанных команд по тикам
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
