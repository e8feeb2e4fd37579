package catalog

import "time"

type Artist struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Genre        string `json:"genre"`
	Bio          string `json:"bio"`
	ImageURL     string `json:"imageUrl"`
	SpotifyURL   string `json:"spotifyUrl,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
	YouTubeURL   string `json:"youtubeUrl,omitempty"`
}

type EventStatus string

const (
	EventOnSale  EventStatus = "on_sale"
	EventFewLeft EventStatus = "few_left"
	EventSoldOut EventStatus = "sold_out"
)

type Event struct {
	ID        int64       `json:"id"`
	ArtistID  int64       `json:"artistId"`
	Title     string      `json:"title"`
	Venue     string      `json:"venue"`
	City      string      `json:"city"`
	Country   string      `json:"country"`
	StartsAt  time.Time   `json:"startsAt"`
	TicketURL string      `json:"ticketUrl,omitempty"`
	Status    EventStatus `json:"status"`
}
