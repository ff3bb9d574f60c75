package domain

// ProfileTarget is one profile to fetch. MaxPosts 0 means no cap.
type ProfileTarget struct {
	Username string
	MaxPosts int
}

// ProfileResult summarises one profile run.
type ProfileResult struct {
	Username string
	Posts    int
	Files    map[string]string
	Stored   int64
	Err      error
}
