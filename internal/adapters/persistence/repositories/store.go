package repositories

import "gorm.io/gorm"

// NewGormStore wires every repository to one gorm connection
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Applications:  NewApplicationRepository(db),
		Persons:       NewPersonRepository(db),
		Users:         NewUserRepository(db),
		Lookups:       NewLookupRepository(db),
		Announcements: NewAnnouncementRepository(db),
		CommonCodes:   NewCommonCodeRepository(db),
	}
}
