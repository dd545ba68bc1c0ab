package domain

import "time"

// User type codes (lookup type 140)
const (
	UserTypeAdmin     = "100"
	UserTypeApplicant = "200"
)

// Yes/No codes used by emailyn and the status flags
const (
	CodeYes = "100"
	CodeNo  = "200"
)

// Lookup categories (type_cd)
const (
	LookupExamType      = "100"
	LookupParticipation = "110"
	LookupRefundRequest = "120"
	LookupYesNo         = "130"
	LookupUserType      = "140"
)

// AdminTypeName is the lookup label of the administrator user type
const AdminTypeName = "관리자"

// DefaultApplicationStatus is set on submission when the form has none
const DefaultApplicationStatus = "제출"

// FieldSet is a partial update keyed by the JSON field name
type FieldSet map[string]any

// Application represents a submitted church application
type Application struct {
	ID              string     `json:"id"`
	ChurchName      string     `json:"churchName"`
	ContactName     string     `json:"contactName"`
	ContactPosition string     `json:"contactPosition"`
	ContactPhone    string     `json:"contactPhone"`
	PastorName      string     `json:"pastorName"`
	ChurchAddress   string     `json:"churchAddress"`
	Denomination    string     `json:"denomination"`
	UserID          string     `json:"userId"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"createdAt"`
}

// Person represents one applicant (bo_person) of an application
type Person struct {
	ID                  string    `json:"personId"`
	ApplicationID       string    `json:"applicationId"`
	UserID              string    `json:"userId"`
	ApplicationNo       FlexValue `json:"applicationNo"`
	ExamineNumber       string    `json:"examineNumber"`
	ExamType            string    `json:"examType"`
	ApplicantName       string    `json:"applicantName"`
	Mobile              string    `json:"mobile"`
	DepositNote         string    `json:"depositNote"`
	ParticipationStatus string    `json:"participationStatus"`
	FeeConfirmed        string    `json:"feeConfirmed"`
	ContactConfirmed    string    `json:"contactConfirmed"`
	RefundRequest       string    `json:"refundRequest"`
	RefundConfirmed     string    `json:"refundConfirmed"`
	CreateYMD           string    `json:"create_ymd"`
}

// User represents a registered account profile (bo_users). ID is the
// identity provider uid.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"Name"`
	Phone     string `json:"Phone"`
	Email     string `json:"eMail"`
	UserType  string `json:"userType"`
	EmailYN   string `json:"emailyn"`
	CreateYMD string `json:"create_ymd"`
}

// IsAdmin reports whether the profile carries the administrator type
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// LookupValue is one row of the time-windowed code table (bo_lookup_value)
type LookupValue struct {
	ID       string    `json:"id"`
	TypeCd   string    `json:"type_cd"`
	ValueCd  FlexValue `json:"value_cd"`
	ValueNm  string    `json:"value_nm"`
	StartYMD string    `json:"start_ymd"`
	EndYMD   string    `json:"end_ymd"`
}

// Announcement is a notice shown on the public site
type Announcement struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// CommonCode is an admin-maintained code shown in public selects, grouped by
// Group and ordered by Order then Code
type CommonCode struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Principal is an identity known to the identity provider
type Principal struct {
	UID         string         `json:"uid"`
	Email       string         `json:"email"`
	DisplayName string         `json:"displayName"`
	Admin       bool           `json:"admin"`
	Claims      map[string]any `json:"-"`
}

// AdminInToken reports whether the verified token itself carries admin=true
func (p *Principal) AdminInToken() bool {
	if p == nil || p.Claims == nil {
		return false
	}
	v, ok := p.Claims["admin"].(bool)
	return ok && v
}

// ReportRow is a denormalized application/person/user row. Order is
// presentational and recomputed on every filter pass.
type ReportRow struct {
	Order           int    `json:"order"`
	ApplicationID   string `json:"applicationId"`
	ChurchName      string `json:"churchName"`
	ContactName     string `json:"contactName"`
	ContactPosition string `json:"contactPosition"`
	ContactPhone    string `json:"contactPhone"`
	PastorName      string `json:"pastorName"`
	ChurchAddress   string `json:"churchAddress"`
	Denomination    string `json:"denomination"`
	UserID          string `json:"userId"`
	SubmittedAt     string `json:"submittedAt"`
	SubmitterName   string `json:"submitterName"`
	SubmitterPhone  string `json:"submitterPhone"`

	PersonID            string `json:"personId"`
	ApplicationNo       string `json:"applicationNo"`
	ExamineNumber       string `json:"examineNumber"`
	ExamType            string `json:"examType"`
	ApplicantName       string `json:"applicantName"`
	Mobile              string `json:"mobile"`
	DepositNote         string `json:"depositNote"`
	ParticipationStatus string `json:"participationStatus"`
	FeeConfirmed        string `json:"feeConfirmed"`
	ContactConfirmed    string `json:"contactConfirmed"`
	RefundRequest       string `json:"refundRequest"`
	RefundConfirmed     string `json:"refundConfirmed"`

	ExamTypeName            string `json:"examTypeName"`
	ParticipationStatusName string `json:"participationStatusName"`
	FeeConfirmedName        string `json:"feeConfirmedName"`
	ContactConfirmedName    string `json:"contactConfirmedName"`
	RefundRequestName       string `json:"refundRequestName"`
	RefundConfirmedName     string `json:"refundConfirmedName"`
}

// ContactRow is an application-only row of the contact list
type ContactRow struct {
	Order           int    `json:"order"`
	ApplicationID   string `json:"applicationId"`
	ChurchName      string `json:"churchName"`
	ContactName     string `json:"contactName"`
	ContactPosition string `json:"contactPosition"`
	ContactPhone    string `json:"contactPhone"`
	Denomination    string `json:"denomination"`
	PastorName      string `json:"pastorName"`
	ChurchAddress   string `json:"churchAddress"`
}

// LookupOption is a currently valid code offered in pick-lists
type LookupOption struct {
	ValueCd string `json:"value_cd"`
	ValueNm string `json:"value_nm"`
}
