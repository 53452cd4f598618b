// scripts/backup_tool.go
//
// go run ./scripts import <file>   แทนที่ข้อมูลทั้งหมดด้วยไฟล์สำรอง
// go run ./scripts export [dir]    เขียนไฟล์สำรองลง dir (ค่าเริ่มต้น BACKUP_DIR)
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samxiao0/campus-cron/config"
	"github.com/samxiao0/campus-cron/database"
	"github.com/samxiao0/campus-cron/services"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: backup_tool import <file> | export [dir]")
		os.Exit(2)
	}

	cfg := config.Load()
	kv, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := services.NewTracker(kv, cfg.StateKey)
	if err := svc.Load(ctx); err != nil {
		log.Fatalf("failed to load state: %v", err)
	}

	switch os.Args[1] {
	case "import":
		if len(os.Args) < 3 {
			log.Fatal("import needs a file")
		}
		data, err := os.ReadFile(os.Args[2])
		if err != nil {
			log.Fatalf("failed to read %s: %v", os.Args[2], err)
		}
		if err := svc.Import(ctx, data); err != nil {
			log.Fatalf("import failed: %v", err)
		}
		info := svc.Info()
		fmt.Printf("✅ Imported %d subjects, %d attendance records\n", info.TotalSubjects, info.AttendanceRecords)

	case "export":
		dir := cfg.BackupDir
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		path, err := services.WriteBackup(svc, dir)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Println("✅ Backup written to", path)

	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
}
