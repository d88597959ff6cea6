package path

import (
	"hash/fnv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Path is an immutable value representation of a pathname string. A
// pathname is decomposed into an optional drive letter, a flag
// indicating whether the path is relative, and an ordered sequence of
// non-empty components. Redundant separators are collapsed during
// parsing, meaning that rendering a Path back to a string yields a
// canonical form.
//
// Paths perform no resolution against the state of a file system.
// "." and ".." are stored and rendered literally, just like any other
// component. Because every operation returns a new instance, Path
// values can be shared between goroutines without locking.
type Path struct {
	driveLetter rune
	relative    bool
	segments    []string
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// Parse decomposes a pathname string into a Path. Both forward and
// backward slashes are accepted as separators. A drive letter is
// captured when the second character is a colon. Whether the path is
// relative is determined solely by the presence of a leading separator
// after the drive letter has been stripped; "C:" by itself yields a
// relative path.
//
// Parsing cannot fail. The empty string yields a relative path with
// zero components.
func Parse(value string) Path {
	var driveLetter rune
	if len(value) >= 2 && value[1] == ':' {
		driveLetter = rune(value[0])
		value = value[2:]
	}
	relative := true
	if value != "" && isSeparator(rune(value[0])) {
		relative = false
	}
	return Path{
		driveLetter: driveLetter,
		relative:    relative,
		segments:    strings.FieldsFunc(value, isSeparator),
	}
}

// IsRelative returns whether the path needs to be anchored through
// Combine() before it can be handed to file system operations that
// require an absolute location.
func (p Path) IsRelative() bool {
	return p.relative
}

// IsEmpty returns whether the path holds zero components. Empty paths
// occur as intermediate values, such as the root of an absolute path
// or the result of relativizing a path against itself.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// DriveLetter returns the drive letter of the path, together with
// whether one is present at all.
func (p Path) DriveLetter() (rune, bool) {
	return p.driveLetter, p.driveLetter != 0
}

// Segments returns a copy of the path's components.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// String renders the path in canonical form: an optional drive letter
// followed by a colon, a leading slash for absolute paths, and the
// components joined by single forward slashes. Separator style and
// redundant separators of the originally parsed string are not
// preserved.
func (p Path) String() string {
	var sb strings.Builder
	if p.driveLetter != 0 {
		sb.WriteRune(p.driveLetter)
		sb.WriteByte(':')
	}
	if !p.relative {
		sb.WriteByte('/')
	}
	for i, segment := range p.segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(segment)
	}
	return sb.String()
}

// Equals returns whether two paths are structurally equal, meaning
// that their relativity, drive letter and components all match. No
// case or separator normalization is performed beyond what Parse()
// already did.
func (p Path) Equals(other Path) bool {
	if p.relative != other.relative || p.driveLetter != other.driveLetter || len(p.segments) != len(other.segments) {
		return false
	}
	for i, segment := range p.segments {
		if other.segments[i] != segment {
			return false
		}
	}
	return true
}

// Hash returns a hash value that is consistent with Equals(), allowing
// paths to be used as keys of maps that are indexed by hash.
func (p Path) Hash() uint64 {
	h := fnv.New64a()
	if p.relative {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(string(p.driveLetter)))
	for _, segment := range p.segments {
		h.Write([]byte(segment))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Combine appends a relative path to the current one, yielding a path
// whose anchor (relativity and drive letter) is taken from the current
// path. The appended path must not be anchored itself: combining with
// an absolute path or one that carries a drive letter fails.
func (p Path) Combine(other Path) (Path, error) {
	if !other.relative || other.driveLetter != 0 {
		return Path{}, status.Errorf(codes.InvalidArgument, "Path %#v cannot be combined with %#v, as the latter is anchored", p.String(), other.String())
	}
	segments := make([]string, 0, len(p.segments)+len(other.segments))
	segments = append(segments, p.segments...)
	segments = append(segments, other.segments...)
	return Path{
		driveLetter: p.driveLetter,
		relative:    p.relative,
		segments:    segments,
	}, nil
}

// Parent strips the last component off the path, preserving the
// anchor. An empty path has no parent.
func (p Path) Parent() (Path, error) {
	if len(p.segments) == 0 {
		return Path{}, status.Error(codes.InvalidArgument, "Empty path has no parent")
	}
	return Path{
		driveLetter: p.driveLetter,
		relative:    p.relative,
		segments:    p.segments[: len(p.segments)-1 : len(p.segments)-1],
	}, nil
}

// IsBelowOrEqual returns whether the path would reach base by
// stripping zero or more trailing components through Parent(). An
// empty path is never below or equal to anything, and nothing is ever
// below or equal to an empty base, as walking up stops before reaching
// an empty path. The test is purely structural: it compares component
// prefixes and does not consult the file system.
func (p Path) IsBelowOrEqual(base Path) bool {
	// Parent() preserves the anchor, so no truncation of p can
	// ever structurally equal a base with a different one.
	if p.relative != base.relative || p.driveLetter != base.driveLetter {
		return false
	}
	if len(p.segments) == 0 || len(base.segments) == 0 || len(base.segments) > len(p.segments) {
		return false
	}
	for i, segment := range base.segments {
		if p.segments[i] != segment {
			return false
		}
	}
	return true
}

// RelativeTo strips an ancestor-or-equal base off the path, yielding
// the relative path that Combine() would need to reconstruct the
// original from the base. The result carries no drive letter, as a
// relative path holds no anchor information.
func (p Path) RelativeTo(base Path) (Path, error) {
	if !p.IsBelowOrEqual(base) {
		return Path{}, status.Errorf(codes.InvalidArgument, "Path %#v is not below or equal to %#v", p.String(), base.String())
	}
	segments := p.segments[len(base.segments):]
	return Path{
		relative: true,
		segments: append([]string(nil), segments...),
	}, nil
}

// FileName returns the last component of the path.
func (p Path) FileName() (string, error) {
	if len(p.segments) == 0 {
		return "", status.Error(codes.InvalidArgument, "Empty path has no file name")
	}
	return p.segments[len(p.segments)-1], nil
}

// ExtensionWithDot returns the part of the file name starting at the
// final dot, or the empty string if the file name contains no dot.
func (p Path) ExtensionWithDot() (string, error) {
	fileName, err := p.FileName()
	if err != nil {
		return "", err
	}
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 {
		return fileName[i:], nil
	}
	return "", nil
}

// HasExtension returns whether the path's file name carries one of the
// provided extensions, which may be given with or without a leading
// dot. Extensions are compared case insensitively. An empty path has
// no file name and therefore no extension.
func (p Path) HasExtension(extensions ...string) bool {
	if len(p.segments) == 0 {
		return false
	}
	actual, _ := p.ExtensionWithDot()
	for _, extension := range extensions {
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
		if strings.EqualFold(actual, extension) {
			return true
		}
	}
	return false
}
