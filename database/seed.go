package database

import (
	"log"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the default admin/instructor/student accounts and a demo
// course on first boot. Safe to call on every startup.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("Seeding initial data...")

	admin := seedUser(db, "admin", "admin@lms.com", "System Administrator", "admin123", models.RoleAdmin)
	instructor := seedUser(db, "instructor", "instructor@lms.com", "John Instructor", "instructor123", models.RoleInstructor)
	seedUser(db, "student", "student@lms.com", "Jane Student", "student123", models.RoleStudent)

	if admin == nil || instructor == nil {
		return
	}

	demo := courseModels.Course{
		Title:        "Introduction to Go",
		Description:  "A beginner friendly walk through the Go programming language.",
		Price:        49.99,
		IsApproved:   true,
		InstructorID: instructor.ID,
	}
	if err := db.Create(&demo).Error; err != nil {
		log.Printf("Error seeding demo course: %v", err)
		return
	}

	lessons := []courseModels.Lesson{
		{CourseID: demo.ID, SequenceNumber: 1, Title: "Getting Started", ContentType: courseModels.ContentTypeText, ContentText: "Installing the toolchain and writing your first program."},
		{CourseID: demo.ID, SequenceNumber: 2, Title: "Syntax Tour", ContentType: courseModels.ContentTypeVideo, ContentURL: "https://videos.lms.com/go/syntax-tour"},
		{CourseID: demo.ID, SequenceNumber: 3, Title: "Reference Sheet", ContentType: courseModels.ContentTypePDF, ContentURL: "https://files.lms.com/go/reference.pdf"},
	}
	if err := db.Create(&lessons).Error; err != nil {
		log.Printf("Error seeding demo lessons: %v", err)
	}

	log.Println("Seeding completed.")
}

func seedUser(db *gorm.DB, username, email, fullName, password, role string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing seed password for %s: %v", username, err)
		return nil
	}

	user := models.User{
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: string(hashed),
		Role:     role,
		Enabled:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error seeding user %s: %v", username, err)
		return nil
	}
	return &user
}
