package grid

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/event"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// CellType classifies a grid cell
type CellType int

const (
	// CellHeader is row 1 of a Day/Week column and holds events that do not fit the time slots
	CellHeader CellType = iota
	CellNormal
	// CellDisabled cells never hold items
	CellDisabled
)

func (t CellType) String() string {
	switch t {
	case CellHeader:
		return "header"
	case CellNormal:
		return "normal"
	case CellDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// CellItem is one occurrence of an event inside a cell
type CellItem[E any] struct {
	ID    string
	Span  int // slots (Day/Week) or days (Month), always >= 1
	Event *event.Descriptor[E]
}

type Cell[E any] struct {
	ID       string
	DateTime time.Time // slot start, or the date for header and month cells
	Title    string
	RowIndex int // 1-based
	Type     CellType
	Items    []*CellItem[E]
}

type Column[E any] struct {
	DayOfWeek time.Weekday
	Index     int       // 1-based
	Date      time.Time // zero for month columns
	Title     string
	Cells     []*Cell[E]
}

// Grid is the computed layout for one display. Ids are regenerated on every build,
// so ids held from a previous grid simply stop resolving.
type Grid[E any] struct {
	Title       string
	DisplayType models.DisplayType
	Anchor      time.Time
	Columns     []*Column[E]

	cells  map[string]*Cell[E]
	owners map[string]*Cell[E]
	items  map[string]*CellItem[E]
}

func newGrid[E any](title string, displayType models.DisplayType, anchor time.Time) *Grid[E] {
	return &Grid[E]{
		Title:       title,
		DisplayType: displayType,
		Anchor:      anchor,
		cells:       make(map[string]*Cell[E]),
		owners:      make(map[string]*Cell[E]),
		items:       make(map[string]*CellItem[E]),
	}
}

func newCell[E any](dt time.Time, title string, row int, typ CellType) *Cell[E] {
	return &Cell[E]{
		ID:       uuid.NewString(),
		DateTime: dt,
		Title:    title,
		RowIndex: row,
		Type:     typ,
	}
}

func (g *Grid[E]) addColumn(col *Column[E]) {
	g.Columns = append(g.Columns, col)
	for _, c := range col.Cells {
		g.cells[c.ID] = c
	}
}

func (g *Grid[E]) addItem(cell *Cell[E], desc *event.Descriptor[E], span int) *CellItem[E] {
	if span < 1 {
		span = 1
	}
	item := &CellItem[E]{ID: uuid.NewString(), Span: span, Event: desc}
	cell.Items = append(cell.Items, item)
	g.owners[item.ID] = cell
	g.items[item.ID] = item
	return item
}

// Cell returns the cell with the given id, or nil
func (g *Grid[E]) Cell(id string) *Cell[E] {
	if g == nil {
		return nil
	}
	return g.cells[id]
}

// Item returns the item with the given id, or nil
func (g *Grid[E]) Item(id string) *CellItem[E] {
	if g == nil {
		return nil
	}
	return g.items[id]
}

// ItemCell returns the cell currently holding the item, or nil
func (g *Grid[E]) ItemCell(itemID string) *Cell[E] {
	if g == nil {
		return nil
	}
	return g.owners[itemID]
}

// FindItem returns the first item wrapping e, or nil when e is not on the grid
func (g *Grid[E]) FindItem(e *E) *CellItem[E] {
	if g == nil || e == nil {
		return nil
	}
	for _, col := range g.Columns {
		for _, cell := range col.Cells {
			for _, item := range cell.Items {
				if item.Event.Event() == e {
					return item
				}
			}
		}
	}
	return nil
}

// CellAt returns the cell of the given type covering t. Normal cells of a Day or Week
// grid match by slot, every other cell matches by date.
func (g *Grid[E]) CellAt(t time.Time, typ CellType) *Cell[E] {
	if g == nil {
		return nil
	}
	bySlot := typ == CellNormal && g.DisplayType != models.DisplayMonth
	for _, col := range g.Columns {
		for _, cell := range col.Cells {
			if cell.Type != typ {
				continue
			}
			if bySlot {
				if !t.Before(cell.DateTime) && t.Before(cell.DateTime.Add(constants.SlotDuration)) {
					return cell
				}
				continue
			}
			if utils.SameDay(cell.DateTime, t) {
				return cell
			}
		}
	}
	return nil
}

// MoveItem relocates an item to another cell and keeps the index current.
// It reports false when either id is unknown.
func (g *Grid[E]) MoveItem(itemID, targetCellID string) bool {
	if g == nil {
		return false
	}
	source, target := g.owners[itemID], g.cells[targetCellID]
	item := g.items[itemID]
	if source == nil || target == nil || item == nil {
		return false
	}
	for i, it := range source.Items {
		if it.ID == itemID {
			source.Items = append(source.Items[:i], source.Items[i+1:]...)
			break
		}
	}
	target.Items = append(target.Items, item)
	g.owners[itemID] = target
	return true
}

// Items returns every item on the grid in column, then row order
func (g *Grid[E]) Items() []*CellItem[E] {
	if g == nil {
		return nil
	}
	var items []*CellItem[E]
	for _, col := range g.Columns {
		for _, cell := range col.Cells {
			items = append(items, cell.Items...)
		}
	}
	return items
}

// Rows returns the number of cell rows of the tallest column
func (g *Grid[E]) Rows() int {
	rows := 0
	for _, col := range g.Columns {
		rows = max(rows, len(col.Cells))
	}
	return rows
}
