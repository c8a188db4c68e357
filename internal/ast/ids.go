package ast

type (
	// main entities
	ExprID uint32
	PatID  uint32
	DefID  uint32
	TypeID uint32
	// payload handle inside a per-kind arena
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoPatID     PatID     = 0
	NoDefID     DefID     = 0
	NoTypeID    TypeID    = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PatID) IsValid() bool     { return id != NoPatID }
func (id DefID) IsValid() bool     { return id != NoDefID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
