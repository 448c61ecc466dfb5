package feed

// Fixed showcase content for the home feed. Real user posts appear on
// the profile page only.

var samplePosts = []FeedPost{
	{
		ID:      1,
		Content: "Had a great run this morning!",
		Author: FeedAuthor{
			Fullname: "John Doe",
			Avatar:   "/images/avatar1.png",
		},
		CreatedAt: "1 hour ago",
	},
	{
		ID:      2,
		Content: "Loving the new yoga class at the gym.",
		Author: FeedAuthor{
			Fullname: "Jane Smith",
			Avatar:   "/images/avatar2.png",
		},
		CreatedAt: "2 hours ago",
	},
}

var sampleActivities = []Activity{
	{Emoji: "🏃‍♂️", Name: "Morning Run", Date: "Today"},
	{Emoji: "🧘‍♀️", Name: "Yoga Session", Date: "Tomorrow"},
	{Emoji: "🚴‍♂️", Name: "Cycling", Date: "Next Week"},
}

var sampleEvents = []Event{
	{Emoji: "⚽", Name: "Football Match", TimeLeft: "2 days"},
	{Emoji: "🏀", Name: "Basketball Tournament", TimeLeft: "5 days"},
	{Emoji: "🎾", Name: "Tennis Workshop", TimeLeft: "1 week"},
}
