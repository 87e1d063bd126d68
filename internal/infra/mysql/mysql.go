package mysql

import (
	"fmt"
	"os"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// buildDSN assembles the driver DSN. clientFoundRows=true makes
// RowsAffected report matched rows rather than changed rows; the
// conditional updates in the course repository rely on that to tell "no
// such row / condition failed" apart from "matched but already in the
// requested state".
func buildDSN(user, pass, host, port, dbname string) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		user, pass, host, port, dbname,
	)
}

func NewMySQLFromEnv() (*gorm.DB, error) {
	dsn := buildDSN(
		os.Getenv("MYSQL_USER"),
		os.Getenv("MYSQL_PASSWORD"),
		os.Getenv("MYSQL_HOST"),
		os.Getenv("MYSQL_PORT"),
		os.Getenv("MYSQL_DATABASE"),
	)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.Student{},
		&domain.Teacher{},
		&domain.User{},
		&domain.Course{},
		&domain.Cart{},
		&domain.CartLine{},
		&domain.Order{},
		&domain.OrderLine{},
		&domain.Enrollment{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
