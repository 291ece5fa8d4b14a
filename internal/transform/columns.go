package transform

// Column names produced or consumed by the transformer.
const (
	ColFullName    = "Full Name"
	ColCampus      = "Campus"
	ColTestYear    = "Test Year"
	ColYearLevel   = "Year Level"
	ColStudentID   = "Student ID"
	ColCasesID     = "Cases ID"
	ColFirstName   = "First Name"
	ColSecondName  = "Second Name"
	ColSurname     = "Surname"
	ColProcessedOn = "Processed On"
	ColSourceFile  = "Source File"
)

// TimestampLayout formats the Processed On column.
const TimestampLayout = "2006-01-02 15:04:05"

// PreferredOrder lists the columns that lead every transformed chunk when
// present. A new master table header always carries all of them.
var PreferredOrder = []string{
	ColFullName,
	ColCampus,
	ColTestYear,
	ColYearLevel,
	ColStudentID,
	"READING",
	"READING Proficiency",
	"WRITING",
	"WRITING Proficiency",
	"SPELLING",
	"SPELLING Proficiency",
	"NUMERACY",
	"NUMERACY Proficiency",
	"GRAMMAR & PUNCTUATION",
	"GRAMMAR & PUNCTUATION Proficiency",
	"Date of birth",
	"Gender",
	"LBOTE",
	"ATSI",
	ColProcessedOn,
	ColSourceFile,
}

// DroppedColumns are removed from every chunk. "Date of Birth" differs from
// the retained "Date of birth" only by case.
var DroppedColumns = []string{
	"APS Year",
	"Reporting Test",
	ColFirstName,
	ColSecondName,
	ColSurname,
	"Home Group",
	"Date of Birth",
	"Home School Name",
	"Reporting School Name",
}

// MissingReportHeader is the header of the missing-ID report.
var MissingReportHeader = []string{ColFullName, ColCampus, ColTestYear}
