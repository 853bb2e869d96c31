package shellsetup

import (
	"errors"
	"strings"
)

// ErrUnparsableGitURI is returned for URIs without a user and repository.
var ErrUnparsableGitURI = errors.New("unable to parse git URI")

// GitURI is the part of a clone URL used to name the directory.
type GitURI struct {
	Host string
	User string
	Repo string
}

// ParseGitURI understands https://host/user/repo and git@host:user/repo,
// with or without a .git suffix.
func ParseGitURI(input string) (GitURI, error) {
	uri := strings.TrimSuffix(strings.TrimSpace(input), "/")
	uri = strings.TrimSuffix(uri, ".git")

	for _, scheme := range []string{"https://", "http://", "ssh://git@", "ssh://"} {
		if rest, ok := strings.CutPrefix(uri, scheme); ok {
			parts := strings.Split(rest, "/")
			if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
				return GitURI{}, ErrUnparsableGitURI
			}
			return GitURI{Host: parts[0], User: parts[1], Repo: parts[2]}, nil
		}
	}

	if rest, ok := strings.CutPrefix(uri, "git@"); ok {
		host, path, found := strings.Cut(rest, ":")
		if !found || host == "" {
			return GitURI{}, ErrUnparsableGitURI
		}
		user, repo, found := strings.Cut(path, "/")
		if !found || user == "" || repo == "" {
			return GitURI{}, ErrUnparsableGitURI
		}
		if i := strings.IndexByte(repo, '/'); i >= 0 {
			repo = repo[:i]
		}
		return GitURI{Host: host, User: user, Repo: repo}, nil
	}
	return GitURI{}, ErrUnparsableGitURI
}

// IsGitURI reports whether a query looks like something to clone rather
// than a name to search for.
func IsGitURI(arg string) bool {
	a := strings.TrimSpace(arg)
	return strings.HasPrefix(a, "http://") ||
		strings.HasPrefix(a, "https://") ||
		strings.HasPrefix(a, "ssh://") ||
		strings.HasPrefix(a, "git@") ||
		strings.HasSuffix(a, ".git")
}

// CloneDirName is "<datePrefix>-<user>-<repo>", or custom when set.
func CloneDirName(uri, custom, datePrefix string) (string, error) {
	if custom = strings.TrimSpace(custom); custom != "" {
		return custom, nil
	}
	parsed, err := ParseGitURI(uri)
	if err != nil {
		return "", err
	}
	return datePrefix + "-" + parsed.User + "-" + parsed.Repo, nil
}
