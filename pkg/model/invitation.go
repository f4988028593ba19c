package model

import (
	"errors"
	"fmt"
)

type Category string

const (
	CategorySent     Category = "sent"
	CategoryReceived Category = "received"
	CategoryAccepted Category = "accepted"
)

var ErrUnknownCategory = errors.New("unknown invitation category")

var categoryPaths = map[Category]string{
	CategorySent:     "/invitation/waiting/",
	CategoryReceived: "/invitation/pending/",
	CategoryAccepted: "/invitation/upcoming/",
}

func Categories() []Category {
	return []Category{CategorySent, CategoryReceived, CategoryAccepted}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryPaths[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}

	return c, nil
}

// Path is the server endpoint listing invitations of the category.
func (c Category) Path() (string, error) {
	if p, ok := categoryPaths[c]; ok {
		return p, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}

type Invitation struct {
	InvitationID FlexString `json:"invitationId" yaml:"invitation_id"`
	SenderID     FlexString `json:"senderId" yaml:"sender_id"`
	ReceiverID   FlexString `json:"receiverId" yaml:"receiver_id"`
	SenderName   string     `json:"sName" yaml:"sender_name"`
	ReceiverName string     `json:"rName" yaml:"receiver_name"`
	Category     Category   `json:"category,omitempty" yaml:"category"`
}

func (i *Invitation) IsSentBy(uid string) bool {
	return i.SenderID.String() == uid
}

// CounterpartID is the id of the other party relative to uid.
func (i *Invitation) CounterpartID(uid string) string {
	if i.IsSentBy(uid) {
		return i.ReceiverID.String()
	}

	return i.SenderID.String()
}

func (i *Invitation) CounterpartName(uid string) string {
	if i.IsSentBy(uid) {
		return i.ReceiverName
	}

	return i.SenderName
}
