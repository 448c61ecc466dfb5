package feed

import (
	"github.com/emreyozkan/SportConnect/internal/post"
	"github.com/emreyozkan/SportConnect/internal/user"
)

// SuggestedUser annotates another user with the viewer's relationship
// to them.
type SuggestedUser struct {
	user.Public
	IsFriend    bool `json:"isFriend"`
	RequestSent bool `json:"requestSent"`
}

type Analytics struct {
	TotalUsers          int64  `json:"totalUsers"`
	ActiveToday         int    `json:"activeToday"`
	MostPopularActivity string `json:"mostPopularActivity"`
}

// FeedPost is the illustrative home-feed content; real posts live on
// the profile page.
type FeedPost struct {
	ID        int        `json:"id"`
	Content   string     `json:"content"`
	Author    FeedAuthor `json:"author"`
	CreatedAt string     `json:"createdAt"`
}

type FeedAuthor struct {
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

type Activity struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
	Date  string `json:"date"`
}

type Event struct {
	Emoji    string `json:"emoji"`
	Name     string `json:"name"`
	TimeLeft string `json:"timeLeft"`
}

// HomeView is everything the home page needs, assembled without any
// knowledge of how it gets rendered.
type HomeView struct {
	User                *user.Public    `json:"user"`
	SuggestedUsers      []SuggestedUser `json:"suggestedUsers"`
	Analytics           Analytics       `json:"analytics"`
	Posts               []FeedPost      `json:"posts"`
	SuggestedActivities []Activity      `json:"suggestedActivities"`
	UpcomingEvents      []Event         `json:"upcomingEvents"`
}

type ProfileView struct {
	User  *user.Public `json:"user"`
	Posts []post.Post  `json:"posts"`
}
