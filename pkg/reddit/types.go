package reddit

import "strings"

// DeletedAuthor is what Reddit reports as the author of a post whose author
// deleted it.
const DeletedAuthor = "[deleted]"

// Account is the identity behind a refresh token.
type Account struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Post is a self post as returned by the by-id listing.
type Post struct {
	// Fullname is the "t3_" prefixed id used by every write endpoint.
	Fullname string `json:"name"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"selftext"`
	Author   string `json:"author"`
	Upvotes  int    `json:"ups"`
	Comments int    `json:"num_comments"`
	URL      string `json:"url"`
}

// Deleted reports whether the author removed the post.
func (p Post) Deleted() bool { return p.Author == DeletedAuthor }

// Submission is a new self post.
type Submission struct {
	Subreddit string
	Title     string
	Text      string
}

// ProfileSubreddit returns the user's own profile subreddit, "u_<name>".
func ProfileSubreddit(username string) string {
	return "u_" + username
}

// Fullname ensures the link prefix is present.
func Fullname(id string) string {
	if strings.HasPrefix(id, "t3_") {
		return id
	}
	return "t3_" + id
}

type listing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data Post   `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// jsonEnvelope is the api_type=json response shape of the write endpoints.
type jsonEnvelope struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Name string `json:"name"`
			ID   string `json:"id"`
			URL  string `json:"url"`
		} `json:"data"`
	} `json:"json"`
}

func (e jsonEnvelope) firstError() string {
	if len(e.JSON.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.JSON.Errors[0]))
	for _, p := range e.JSON.Errors[0] {
		if s, ok := p.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ": ")
}
