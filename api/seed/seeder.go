package seed

import (
	"log"

	"warbler/api/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "password",
		Bio:      "Just here for the warbles",
	},
	{
		Username: "bo",
		Email:    "bo@example.com",
		Password: "password",
		Location: "Copenhagen",
	},
}

var messages = []models.Message{
	{
		Text: "First warble!",
	},
	{
		Text: "Does anyone actually read these?",
	},
}

// Load drops and recreates the schema and inserts a couple of users with one
// message each; ana follows bo.
func Load(db *gorm.DB) {
	err := db.Migrator().DropTable(
		&models.Like{},
		&models.Follow{},
		&models.Message{},
		&models.ResetPassword{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("cannot drop tables: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Message{},
		&models.Like{},
		&models.ResetPassword{},
	)
	if err != nil {
		log.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range users {
		users[i].Prepare()
		if _, err := users[i].SaveUser(db); err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}
		messages[i].Prepare()
		messages[i].AuthorID = users[i].ID
		if _, err := messages[i].SaveMessage(db); err != nil {
			log.Fatalf("cannot seed messages table: %v", err)
		}
	}

	follow := models.Follow{FollowerID: users[0].ID, FollowedID: users[1].ID}
	if _, err := follow.SaveFollow(db); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
}
