package models

import (
	"time"
	"unicode/utf8"
)

// Post is a titled message stamped with its creation time.
// Title and message are never empty and never exceed the post's limits.
type Post struct {
	title  string
	msg    string
	date   time.Time
	limits Limits
}

// New creates a post under DefaultLimits, dated with the wall clock.
func New(title, msg string) (*Post, error) {
	return DefaultLimits().NewPost(title, msg, nil)
}

// NewPost validates title then msg and returns a post dated by clock.
// A nil clock means time.Now.
func (l Limits) NewPost(title, msg string, clock Clock) (*Post, error) {
	if err := l.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := l.ValidateMessage(msg); err != nil {
		return nil, err
	}
	return &Post{
		title:  title,
		msg:    msg,
		date:   clock.now(),
		limits: l,
	}, nil
}

// Restore rebuilds a previously created post, keeping its original date.
// The fields are checked against limits like on creation.
func Restore(limits Limits, title, msg string, date time.Time) (*Post, error) {
	return limits.NewPost(title, msg, func() time.Time { return date })
}

// ValidateTitle checks a title against the limits.
func (l Limits) ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > l.MaxTitleLen {
		return &LengthError{Err: ErrTitleTooLong, Max: l.MaxTitleLen, Actual: n}
	}
	return nil
}

// ValidateMessage checks a message against the limits.
func (l Limits) ValidateMessage(msg string) error {
	if msg == "" {
		return ErrEmptyMessage
	}
	if n := utf8.RuneCountInString(msg); n > l.MaxPostLen {
		return &LengthError{Err: ErrMessageTooLong, Max: l.MaxPostLen, Actual: n}
	}
	return nil
}

func (p *Post) Title() string {
	return p.title
}

func (p *Post) Message() string {
	return p.msg
}

func (p *Post) Date() time.Time {
	return p.date
}

func (p *Post) Limits() Limits {
	return p.limits
}

// UpdateMessage replaces the message. On error the post is left untouched.
func (p *Post) UpdateMessage(msg string) error {
	if err := p.limits.ValidateMessage(msg); err != nil {
		return err
	}
	p.msg = msg
	return nil
}

// UpdateTitle replaces the title. On error the post is left untouched.
func (p *Post) UpdateTitle(title string) error {
	if err := p.limits.ValidateTitle(title); err != nil {
		return err
	}
	p.title = title
	return nil
}
