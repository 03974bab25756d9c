package entity

import "time"

// Listing is the aggregate root for a rentable property.
// Reviews are embedded, so deleting a listing needs no cascade.
type Listing struct {
	ID                   string     `bson:"_id" json:"_id" binding:"omitempty,listingid"`
	ListingURL           string     `bson:"listing_url,omitempty" json:"listing_url,omitempty"`
	Name                 string     `bson:"name,omitempty" json:"name,omitempty" binding:"max=500"`
	Summary              string     `bson:"summary,omitempty" json:"summary,omitempty"`
	Space                string     `bson:"space,omitempty" json:"space,omitempty"`
	Description          string     `bson:"description,omitempty" json:"description,omitempty"`
	NeighborhoodOverview string     `bson:"neighborhood_overview,omitempty" json:"neighborhood_overview,omitempty"`
	Notes                string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Transit              string     `bson:"transit,omitempty" json:"transit,omitempty"`
	Access               string     `bson:"access,omitempty" json:"access,omitempty"`
	Interaction          string     `bson:"interaction,omitempty" json:"interaction,omitempty"`
	HouseRules           string     `bson:"house_rules,omitempty" json:"house_rules,omitempty"`
	PropertyType         string     `bson:"property_type,omitempty" json:"property_type,omitempty"`
	RoomType             string     `bson:"room_type,omitempty" json:"room_type,omitempty"`
	BedType              string     `bson:"bed_type,omitempty" json:"bed_type,omitempty"`
	MinimumNights        string     `bson:"minimum_nights,omitempty" json:"minimum_nights,omitempty"`
	MaximumNights        string     `bson:"maximum_nights,omitempty" json:"maximum_nights,omitempty"`
	CancellationPolicy   string     `bson:"cancellation_policy,omitempty" json:"cancellation_policy,omitempty"`
	LastScraped          *time.Time `bson:"last_scraped,omitempty" json:"last_scraped,omitempty"`
	CalendarLastScraped  *time.Time `bson:"calendar_last_scraped,omitempty" json:"calendar_last_scraped,omitempty"`
	FirstReview          *time.Time `bson:"first_review,omitempty" json:"first_review,omitempty"`
	LastReview           *time.Time `bson:"last_review,omitempty" json:"last_review,omitempty"`
	Accommodates         float64    `bson:"accommodates,omitempty" json:"accommodates,omitempty" binding:"gte=0"`
	Bedrooms             float64    `bson:"bedrooms,omitempty" json:"bedrooms,omitempty" binding:"gte=0"`
	Beds                 float64    `bson:"beds,omitempty" json:"beds,omitempty" binding:"gte=0"`
	NumberOfReviews      float64    `bson:"number_of_reviews,omitempty" json:"number_of_reviews,omitempty" binding:"gte=0"`
	Bathrooms            float64    `bson:"bathrooms,omitempty" json:"bathrooms,omitempty" binding:"gte=0"`
	Amenities            []string   `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Price                float64    `bson:"price,omitempty" json:"price,omitempty" binding:"gte=0"`
	SecurityDeposit      float64    `bson:"security_deposit,omitempty" json:"security_deposit,omitempty" binding:"gte=0"`
	CleaningFee          float64    `bson:"cleaning_fee,omitempty" json:"cleaning_fee,omitempty" binding:"gte=0"`
	ExtraPeople          float64    `bson:"extra_people,omitempty" json:"extra_people,omitempty" binding:"gte=0"`
	GuestsIncluded       float64    `bson:"guests_included,omitempty" json:"guests_included,omitempty" binding:"gte=0"`

	Images       *Images       `bson:"images,omitempty" json:"images,omitempty"`
	Host         *Host         `bson:"host,omitempty" json:"host,omitempty"`
	Address      *Address      `bson:"address,omitempty" json:"address,omitempty"`
	Availability *Availability `bson:"availability,omitempty" json:"availability,omitempty"`
	ReviewScores *ReviewScores `bson:"review_scores,omitempty" json:"review_scores,omitempty"`
	Reviews      []Review      `bson:"reviews,omitempty" json:"reviews,omitempty"`
}

type Images struct {
	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	MediumURL    string `bson:"medium_url,omitempty" json:"medium_url,omitempty"`
	PictureURL   string `bson:"picture_url,omitempty" json:"picture_url,omitempty"`
	XLPictureURL string `bson:"xl_picture_url,omitempty" json:"xl_picture_url,omitempty"`
}

type Host struct {
	HostID                 string     `bson:"host_id,omitempty" json:"host_id,omitempty"`
	HostName               string     `bson:"host_name,omitempty" json:"host_name,omitempty"`
	HostSince              *time.Time `bson:"host_since,omitempty" json:"host_since,omitempty"`
	HostLocation           string     `bson:"host_location,omitempty" json:"host_location,omitempty"`
	HostAbout              string     `bson:"host_about,omitempty" json:"host_about,omitempty"`
	HostResponseTime       string     `bson:"host_response_time,omitempty" json:"host_response_time,omitempty"`
	HostResponseRate       string     `bson:"host_response_rate,omitempty" json:"host_response_rate,omitempty"`
	HostIsSuperhost        bool       `bson:"host_is_superhost,omitempty" json:"host_is_superhost,omitempty"`
	HostThumbnailURL       string     `bson:"host_thumbnail_url,omitempty" json:"host_thumbnail_url,omitempty"`
	HostPictureURL         string     `bson:"host_picture_url,omitempty" json:"host_picture_url,omitempty"`
	HostNeighbourhood      string     `bson:"host_neighbourhood,omitempty" json:"host_neighbourhood,omitempty"`
	HostListingsCount      float64    `bson:"host_listings_count,omitempty" json:"host_listings_count,omitempty"`
	HostTotalListingsCount float64    `bson:"host_total_listings_count,omitempty" json:"host_total_listings_count,omitempty"`
	HostVerifications      []string   `bson:"host_verifications,omitempty" json:"host_verifications,omitempty"`
	HostHasProfilePic      bool       `bson:"host_has_profile_pic,omitempty" json:"host_has_profile_pic,omitempty"`
	HostIdentityVerified   bool       `bson:"host_identity_verified,omitempty" json:"host_identity_verified,omitempty"`
}

type Address struct {
	Street         string    `bson:"street,omitempty" json:"street,omitempty"`
	Suburb         string    `bson:"suburb,omitempty" json:"suburb,omitempty"`
	GovernmentArea string    `bson:"government_area,omitempty" json:"government_area,omitempty"`
	Market         string    `bson:"market,omitempty" json:"market,omitempty"`
	Country        string    `bson:"country,omitempty" json:"country,omitempty"`
	CountryCode    string    `bson:"country_code,omitempty" json:"country_code,omitempty"`
	Location       *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
}

// GeoPoint is a GeoJSON point; Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair
func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type Availability struct {
	Availability30  float64 `bson:"availability_30,omitempty" json:"availability_30,omitempty"`
	Availability60  float64 `bson:"availability_60,omitempty" json:"availability_60,omitempty"`
	Availability90  float64 `bson:"availability_90,omitempty" json:"availability_90,omitempty"`
	Availability365 float64 `bson:"availability_365,omitempty" json:"availability_365,omitempty"`
}

type ReviewScores struct {
	Accuracy      float64 `bson:"review_scores_accuracy,omitempty" json:"review_scores_accuracy,omitempty"`
	Cleanliness   float64 `bson:"review_scores_cleanliness,omitempty" json:"review_scores_cleanliness,omitempty"`
	Checkin       float64 `bson:"review_scores_checkin,omitempty" json:"review_scores_checkin,omitempty"`
	Communication float64 `bson:"review_scores_communication,omitempty" json:"review_scores_communication,omitempty"`
	Location      float64 `bson:"review_scores_location,omitempty" json:"review_scores_location,omitempty"`
	Value         float64 `bson:"review_scores_value,omitempty" json:"review_scores_value,omitempty"`
	Rating        float64 `bson:"review_scores_rating,omitempty" json:"review_scores_rating,omitempty"`
}

type Review struct {
	ID           string     `bson:"_id,omitempty" json:"_id,omitempty"`
	Date         *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	ListingID    string     `bson:"listing_id,omitempty" json:"listing_id,omitempty"`
	ReviewerID   string     `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewerName string     `bson:"reviewer_name,omitempty" json:"reviewer_name,omitempty"`
	Comments     string     `bson:"comments,omitempty" json:"comments,omitempty"`
}

// ReviewScoreValue returns the overall value score, zero when no scores exist
func (l *Listing) ReviewScoreValue() float64 {
	if l.ReviewScores == nil {
		return 0
	}
	return l.ReviewScores.Value
}
