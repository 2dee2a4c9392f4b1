package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"grievgo/backend/internal/escalation"
	"grievgo/backend/internal/lifecycle"
	"grievgo/backend/internal/models"
	"grievgo/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const cliActor = "admin-cli"

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin promote <user_id> <student|authority|admin>")
			os.Exit(1)
		}
		if err := promoteUser(storageSvc, os.Args[2], models.Role(os.Args[3])); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now %s.\n", os.Args[2], os.Args[3])
	case "assign":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin assign <complaint_id> <authority_id>")
			os.Exit(1)
		}
		if err := assignAuthority(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error assigning authority: %v", err)
		}
		fmt.Printf("Complaint %s assigned to %s.\n", os.Args[2], os.Args[3])
	case "transition":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin transition <complaint_id> <status> [reason...]")
			os.Exit(1)
		}
		reason := strings.Join(os.Args[4:], " ")
		if err := transition(storageSvc, os.Args[2], models.Status(os.Args[3]), reason); err != nil {
			log.Fatalf("Error transitioning complaint: %v", err)
		}
		fmt.Printf("Complaint %s moved to %s.\n", os.Args[2], os.Args[3])
	case "sweep":
		sweeper := escalation.NewSweeper(storageSvc, nil)
		sweeper.Sweep(time.Now())
		fmt.Println("Escalation sweep complete.")
	case "notice":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin notice <title> [body...]")
			os.Exit(1)
		}
		body := strings.Join(os.Args[3:], " ")
		notice := &models.Notice{Title: os.Args[2], Body: body, PostedBy: cliActor}
		if err := storageSvc.CreateNotice(notice); err != nil {
			log.Fatalf("Error creating notice: %v", err)
		}
		fmt.Printf("Notice %d posted.\n", notice.ID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func promoteUser(s storage.Storage, userID string, role models.Role) error {
	if role != models.RoleStudent && role != models.RoleAuthority && role != models.RoleAdmin {
		return fmt.Errorf("unknown role %q", role)
	}
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Role = role
	return s.SaveUser(user)
}

func assignAuthority(s storage.Storage, complaintID, authorityID string) error {
	authority, err := s.GetUserByID(authorityID)
	if err != nil {
		return err
	}
	if authority.Role != models.RoleAuthority && authority.Role != models.RoleAdmin {
		return fmt.Errorf("user %s is not an authority", authorityID)
	}
	return s.AssignAuthority(complaintID, authorityID)
}

// transition applies a status change from the CLI, enforcing the same
// rules as the API.
func transition(s storage.Storage, complaintID string, target models.Status, reason string) error {
	complaint, err := s.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if !lifecycle.IsValidTransition(complaint.Status, target) {
		return fmt.Errorf("transition %s -> %s is not allowed", complaint.Status, target)
	}
	if lifecycle.ReasonRequired(target) && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("a reason is required to move a complaint to %s", target)
	}
	_, err = s.ApplyTransition(complaintID, target, reason, cliActor)
	return err
}
