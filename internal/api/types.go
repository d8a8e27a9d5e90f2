package api

// StatusNew is the record status permitting edits and photo changes. Any
// other status freezes the record on the backend side.
const StatusNew = 1

// User is the owner sub-object of a pereval record
type User struct {
	ID    int    `json:"id,omitempty"`
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc,omitempty"`
	Phone string `json:"phone"`
}

// Coords is the coordinate sub-object of a pereval record
type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// Difficulty pairs a season with the pass grade observed in that season
type Difficulty struct {
	Season     int `json:"season"`
	Difficulty int `json:"difficulty"`
}

// Pereval is a full mountain-pass record as the backend stores it
type Pereval struct {
	ID               int          `json:"id,omitempty"`
	BeautyTitle      string       `json:"beautyTitle"`
	Title            string       `json:"title"`
	OtherTitles      string       `json:"other_titles,omitempty"`
	Connect          string       `json:"connect,omitempty"`
	AddTime          string       `json:"add_time,omitempty"`
	RouteDescription string       `json:"route_description,omitempty"`
	User             User         `json:"user"`
	Coords           Coords       `json:"coords"`
	Difficulties     []Difficulty `json:"difficulties"`
	Status           int          `json:"status,omitempty"`
}

// Summary is the list-view projection of a pereval record
type Summary struct {
	ID          int    `json:"id"`
	BeautyTitle string `json:"beautyTitle"`
	Title       string `json:"title"`
	Status      int    `json:"status"`
	AddTime     string `json:"add_time"`
	Email       string `json:"email"`
}

// Photo is a server-confirmed photo record attached to a pereval
type Photo struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Title    string `json:"title"`
}
