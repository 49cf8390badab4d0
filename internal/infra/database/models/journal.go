package models

import (
	"time"
)

type User struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:text;not null"`
}

type Note struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string `json:"title" gorm:"type:varchar(200);not null"`
}

type Task struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title" gorm:"type:varchar(200);not null"`
	Completed bool       `json:"completed" gorm:"type:boolean;not null;default:false"`
	Deadline  *time.Time `json:"deadline" gorm:"type:timestamp with time zone"`
}

type Event struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title" gorm:"type:varchar(200);not null"`
	StartDate *time.Time `json:"startDate" gorm:"type:timestamp with time zone"`
	EndDate   *time.Time `json:"endDate" gorm:"type:timestamp with time zone"`
}

// ContentType is the type-descriptor registry, seeded at migration time.
type ContentType struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind  string `json:"kind" gorm:"type:char(1);not null;uniqueIndex"`
	Model string `json:"model" gorm:"type:text;not null"`
}

// JournalItem stores the discriminated reference. There is deliberately no
// foreign key on TargetID: the pair (ContentTypeID, TargetID) can go
// dangling when the target row is deleted, and resolving surfaces that.
// Owner and descriptor rows cascade.
type JournalItem struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemType      string      `json:"itemType" gorm:"type:char(1);not null;index"`
	OwnerID       int64       `json:"ownerID" gorm:"not null;index"`
	Owner         User        `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ContentTypeID int64       `json:"contentTypeID" gorm:"not null;index:idx_journal_items_target"`
	ContentType   ContentType `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	TargetID      int64       `json:"targetID" gorm:"not null;index:idx_journal_items_target;check:target_id > 0"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// ItemRelation links a child journal item to its parent. The unique index
// on ChildID keeps a child under at most one parent.
type ItemRelation struct {
	ParentID int64       `json:"parentID" gorm:"primaryKey"`
	Parent   JournalItem `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
	ChildID  int64       `json:"childID" gorm:"primaryKey;uniqueIndex"`
	Child    JournalItem `json:"-" gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE;"`
}
