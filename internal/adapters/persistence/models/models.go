package models

import (
	"time"

	"olympia-api/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Registration tables (applications, bo_person)
// ============================================================

// Application represents applications table
type Application struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	ChurchName      string     `gorm:"size:200" json:"churchName"`
	ContactName     string     `gorm:"size:100" json:"contactName"`
	ContactPosition string     `gorm:"size:100" json:"contactPosition"`
	ContactPhone    string     `gorm:"size:50" json:"contactPhone"`
	PastorName      string     `gorm:"size:100" json:"pastorName"`
	ChurchAddress   string     `gorm:"size:300" json:"churchAddress"`
	Denomination    string     `gorm:"size:100" json:"denomination"`
	UserID          string     `gorm:"column:user_id;size:128;index" json:"userId"`
	Status          string     `gorm:"size:20" json:"status"`
	CreatedAt       *time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Application) TableName() string {
	return "applications"
}

// ToDomain converts the row to a domain application
func (a *Application) ToDomain() *domain.Application {
	return &domain.Application{
		ID:              a.ID,
		ChurchName:      a.ChurchName,
		ContactName:     a.ContactName,
		ContactPosition: a.ContactPosition,
		ContactPhone:    a.ContactPhone,
		PastorName:      a.PastorName,
		ChurchAddress:   a.ChurchAddress,
		Denomination:    a.Denomination,
		UserID:          a.UserID,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}

// ApplicationFromDomain converts a domain application to a row
func ApplicationFromDomain(a *domain.Application) *Application {
	return &Application{
		ID:              a.ID,
		ChurchName:      a.ChurchName,
		ContactName:     a.ContactName,
		ContactPosition: a.ContactPosition,
		ContactPhone:    a.ContactPhone,
		PastorName:      a.PastorName,
		ChurchAddress:   a.ChurchAddress,
		Denomination:    a.Denomination,
		UserID:          a.UserID,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}

// ApplicationColumns maps JSON field names to columns for partial updates
var ApplicationColumns = map[string]string{
	"churchName":      "church_name",
	"contactName":     "contact_name",
	"contactPosition": "contact_position",
	"contactPhone":    "contact_phone",
	"pastorName":      "pastor_name",
	"churchAddress":   "church_address",
	"denomination":    "denomination",
	"status":          "status",
}

// Person represents bo_person table. applicationNo is kept in two columns so
// that numeric and string forms survive a round trip.
type Person struct {
	ID                  string  `gorm:"primaryKey;size:36" json:"id"`
	ApplicationID       string  `gorm:"column:application_id;size:36;index" json:"applicationId"`
	UserID              string  `gorm:"column:user_id;size:128;index" json:"userId"`
	ApplicationNoNum    *int64  `gorm:"column:application_no_num;index" json:"-"`
	ApplicationNoText   *string `gorm:"column:application_no_text;size:50;index" json:"-"`
	ExamineNumber       string  `gorm:"column:examine_number;size:50" json:"examineNumber"`
	ExamType            string  `gorm:"column:exam_type;size:20" json:"examType"`
	ApplicantName       string  `gorm:"column:applicant_name;size:100" json:"applicantName"`
	Mobile              string  `gorm:"size:50" json:"mobile"`
	DepositNote         string  `gorm:"column:deposit_note;size:200" json:"depositNote"`
	ParticipationStatus string  `gorm:"column:participation_status;size:20;index" json:"participationStatus"`
	FeeConfirmed        string  `gorm:"column:fee_confirmed;size:20;index" json:"feeConfirmed"`
	ContactConfirmed    string  `gorm:"column:contact_confirmed;size:20" json:"contactConfirmed"`
	RefundRequest       string  `gorm:"column:refund_request;size:20;index" json:"refundRequest"`
	RefundConfirmed     string  `gorm:"column:refund_confirmed;size:20;index" json:"refundConfirmed"`
	CreateYMD           string  `gorm:"column:create_ymd;size:8;index" json:"create_ymd"`
}

func (Person) TableName() string {
	return "bo_person"
}

// ToDomain converts the row to a domain person
func (p *Person) ToDomain() *domain.Person {
	return &domain.Person{
		ID:                  p.ID,
		ApplicationID:       p.ApplicationID,
		UserID:              p.UserID,
		ApplicationNo:       domain.FlexValue{Num: p.ApplicationNoNum, Text: p.ApplicationNoText},
		ExamineNumber:       p.ExamineNumber,
		ExamType:            p.ExamType,
		ApplicantName:       p.ApplicantName,
		Mobile:              p.Mobile,
		DepositNote:         p.DepositNote,
		ParticipationStatus: p.ParticipationStatus,
		FeeConfirmed:        p.FeeConfirmed,
		ContactConfirmed:    p.ContactConfirmed,
		RefundRequest:       p.RefundRequest,
		RefundConfirmed:     p.RefundConfirmed,
		CreateYMD:           p.CreateYMD,
	}
}

// PersonFromDomain converts a domain person to a row
func PersonFromDomain(p *domain.Person) *Person {
	return &Person{
		ID:                  p.ID,
		ApplicationID:       p.ApplicationID,
		UserID:              p.UserID,
		ApplicationNoNum:    p.ApplicationNo.Num,
		ApplicationNoText:   p.ApplicationNo.Text,
		ExamineNumber:       p.ExamineNumber,
		ExamType:            p.ExamType,
		ApplicantName:       p.ApplicantName,
		Mobile:              p.Mobile,
		DepositNote:         p.DepositNote,
		ParticipationStatus: p.ParticipationStatus,
		FeeConfirmed:        p.FeeConfirmed,
		ContactConfirmed:    p.ContactConfirmed,
		RefundRequest:       p.RefundRequest,
		RefundConfirmed:     p.RefundConfirmed,
		CreateYMD:           p.CreateYMD,
	}
}

// PersonColumns maps JSON field names to columns for partial updates and
// equality counts. applicationNo is handled separately.
var PersonColumns = map[string]string{
	"applicantName":       "applicant_name",
	"mobile":              "mobile",
	"examType":            "exam_type",
	"examineNumber":       "examine_number",
	"depositNote":         "deposit_note",
	"participationStatus": "participation_status",
	"feeConfirmed":        "fee_confirmed",
	"contactConfirmed":    "contact_confirmed",
	"refundRequest":       "refund_request",
	"refundConfirmed":     "refund_confirmed",
	"create_ymd":          "create_ymd",
}

// ============================================================
// Account & reference tables (bo_users, bo_lookup_value)
// ============================================================

// BoUser represents bo_users table. ID is the identity provider uid.
type BoUser struct {
	ID        string `gorm:"primaryKey;size:128" json:"id"`
	Name      string `gorm:"size:100;index" json:"Name"`
	Phone     string `gorm:"size:50" json:"Phone"`
	Email     string `gorm:"column:email;size:200" json:"eMail"`
	UserType  string `gorm:"column:user_type;size:20;index" json:"userType"`
	EmailYN   string `gorm:"column:emailyn;size:20;index" json:"emailyn"`
	CreateYMD string `gorm:"column:create_ymd;size:8" json:"create_ymd"`
}

func (BoUser) TableName() string {
	return "bo_users"
}

// ToDomain converts the row to a domain user
func (u *BoUser) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		UserType:  u.UserType,
		EmailYN:   u.EmailYN,
		CreateYMD: u.CreateYMD,
	}
}

// BoUserFromDomain converts a domain user to a row
func BoUserFromDomain(u *domain.User) *BoUser {
	return &BoUser{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		UserType:  u.UserType,
		EmailYN:   u.EmailYN,
		CreateYMD: u.CreateYMD,
	}
}

// UserColumns maps JSON field names to columns for partial updates
var UserColumns = map[string]string{
	"Name":     "name",
	"Phone":    "phone",
	"eMail":    "email",
	"userType": "user_type",
	"emailyn":  "emailyn",
}

// LookupValue represents bo_lookup_value table
type LookupValue struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	TypeCd      string  `gorm:"column:type_cd;size:20;index" json:"type_cd"`
	ValueCdNum  *int64  `gorm:"column:value_cd_num" json:"-"`
	ValueCdText *string `gorm:"column:value_cd_text;size:50" json:"-"`
	ValueNm     string  `gorm:"column:value_nm;size:100" json:"value_nm"`
	StartYMD    string  `gorm:"column:start_ymd;size:8" json:"start_ymd"`
	EndYMD      string  `gorm:"column:end_ymd;size:8" json:"end_ymd"`
	SortSeq     int     `gorm:"column:sort_seq;index" json:"-"`
}

func (LookupValue) TableName() string {
	return "bo_lookup_value"
}

// ToDomain converts the row to a domain lookup value
func (l *LookupValue) ToDomain() *domain.LookupValue {
	return &domain.LookupValue{
		ID:       l.ID,
		TypeCd:   l.TypeCd,
		ValueCd:  domain.FlexValue{Num: l.ValueCdNum, Text: l.ValueCdText},
		ValueNm:  l.ValueNm,
		StartYMD: l.StartYMD,
		EndYMD:   l.EndYMD,
	}
}

// LookupValueFromDomain converts a domain lookup value to a row
func LookupValueFromDomain(l *domain.LookupValue) *LookupValue {
	return &LookupValue{
		ID:          l.ID,
		TypeCd:      l.TypeCd,
		ValueCdNum:  l.ValueCd.Num,
		ValueCdText: l.ValueCd.Text,
		ValueNm:     l.ValueNm,
		StartYMD:    l.StartYMD,
		EndYMD:      l.EndYMD,
	}
}

// ============================================================
// Site content & identity
// ============================================================

// Announcement represents announcements table
type Announcement struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"size:300" json:"title"`
	Content   string     `gorm:"type:text" json:"content"`
	CreatedBy string     `gorm:"column:created_by;size:128" json:"createdBy"`
	CreatedAt time.Time  `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// ToDomain converts the row to a domain announcement
func (a *Announcement) ToDomain() *domain.Announcement {
	return &domain.Announcement{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CommonCode represents common_codes table. order is a reserved word, so the
// column is sort_order.
type CommonCode struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Group     string    `gorm:"column:code_group;size:50;index:idx_common_code_group" json:"group"`
	Code      string    `gorm:"size:50" json:"code"`
	Name      string    `gorm:"size:200" json:"name"`
	SortOrder int       `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (CommonCode) TableName() string {
	return "common_codes"
}

// ToDomain converts the row to a domain common code
func (c *CommonCode) ToDomain() *domain.CommonCode {
	return &domain.CommonCode{
		ID:    c.ID,
		Group: c.Group,
		Code:  c.Code,
		Name:  c.Name,
		Order: c.SortOrder,
	}
}

// Principal represents principals table used by the local identity provider
type Principal struct {
	UID          string         `gorm:"primaryKey;size:128" json:"uid"`
	Email        string         `gorm:"uniqueIndex;size:200;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	DisplayName  string         `gorm:"size:100" json:"displayName"`
	AdminClaim   bool           `gorm:"column:admin_claim;default:false" json:"admin"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Principal) TableName() string {
	return "principals"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Application{},
		&Person{},
		&BoUser{},
		&LookupValue{},
		&Announcement{},
		&CommonCode{},
		&Principal{},
	)
}
