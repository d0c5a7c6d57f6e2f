package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/schemagraph/schemagraph/lib/util"
)

const ReportHeader = "Schema changes:"

var ErrCircularDependency = errors.New("circular dependency detected")

// CycleError names the commands that could not be ordered.
type CycleError struct {
	Ids []string
}

func (self *CycleError) Error() string {
	return fmt.Sprintf("%s among commands: %s", ErrCircularDependency, strings.Join(self.Ids, ", "))
}

func (self *CycleError) Is(target error) bool {
	return target == ErrCircularDependency
}

// TransactionWrapper frames a flat list of statements into a final script.
type TransactionWrapper interface {
	WrapInTransaction(statements []string) string
}

// Graph holds the commands of one diff run. It is not safe for concurrent use;
// each run allocates its own.
type Graph struct {
	commands map[string]Command
}

func New() *Graph {
	return &Graph{commands: map[string]Command{}}
}

// AddCommand inserts the command, replacing any previous command with the same id.
func (self *Graph) AddCommand(cmd Command) {
	self.commands[cmd.Id] = cmd.clone()
}

func (self *Graph) Command(id string) (Command, bool) {
	cmd, ok := self.commands[id]
	if !ok {
		return Command{}, false
	}
	return cmd.clone(), true
}

func (self *Graph) Has(id string) bool {
	_, ok := self.commands[id]
	return ok
}

func (self *Graph) Len() int {
	return len(self.commands)
}

// AllCommandIds returns the registered ids in ascending order.
func (self *Graph) AllCommandIds() []string {
	ids := maps.Keys(self.commands)
	sort.Strings(ids)
	return ids
}

// Sorted orders the commands topologically. Among the commands whose
// dependencies are all satisfied, the lowest phase goes first, then the lowest id.
// Dependencies on unknown ids are ignored.
func (self *Graph) Sorted() ([]Command, error) {
	ids := self.AllCommandIds()
	inDegree := make(map[string]int, len(ids))
	successors := make(map[string][]string, len(ids))
	for _, id := range ids {
		inDegree[id] = 0
		for _, dep := range self.commands[id].DependsOn() {
			if _, ok := self.commands[dep]; !ok {
				continue
			}
			inDegree[id]++
			successors[dep] = append(successors[dep], id)
		}
	}

	ready := util.NewHeap(func(l, r Command) bool {
		if l.Phase != r.Phase {
			return l.Phase < r.Phase
		}
		return l.Id < r.Id
	})
	for _, id := range ids {
		if inDegree[id] == 0 {
			ready.Push(self.commands[id])
		}
	}

	sorted := make([]Command, 0, len(ids))
	for ready.Len() > 0 {
		cmd := ready.Pop()
		sorted = append(sorted, cmd.clone())
		for _, next := range successors[cmd.Id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				ready.Push(self.commands[next])
			}
		}
	}

	if len(sorted) < len(ids) {
		stuck := []string{}
		for _, id := range ids {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		return nil, &CycleError{Ids: stuck}
	}
	return sorted, nil
}

// ToScript flattens the statements of every command in sorted order and hands
// them to the platform for transaction framing.
func (self *Graph) ToScript(platform TransactionWrapper) (string, error) {
	sorted, err := self.Sorted()
	if err != nil {
		return "", errors.Wrap(err, "while ordering commands")
	}
	statements := []string{}
	for _, cmd := range sorted {
		statements = append(statements, cmd.Statements...)
	}
	return platform.WrapInTransaction(statements), nil
}

// ReportLines returns the header followed by one bullet per described command.
// With nothing described, only the header is returned.
func (self *Graph) ReportLines() []string {
	lines := []string{ReportHeader}
	sorted, err := self.Sorted()
	if err != nil {
		return append(lines, fmt.Sprintf("! %v", err))
	}
	for _, cmd := range sorted {
		if strings.TrimSpace(cmd.Description) == "" {
			continue
		}
		lines = append(lines, "- "+cmd.Description)
	}
	return lines
}

// HasDataLoss is true when a table is dropped, or a column is dropped without
// being added back under the same target.
func (self *Graph) HasDataLoss() bool {
	return len(self.DestructiveCommands()) > 0
}

// DestructiveCommands lists, in ascending id order, the commands that make
// HasDataLoss true.
func (self *Graph) DestructiveCommands() []string {
	added := util.NewStrSet()
	for _, cmd := range self.commands {
		if cmd.Kind == KindAddColumn {
			added.Add(strings.ToLower(cmd.Target))
		}
	}
	out := []string{}
	for _, id := range self.AllCommandIds() {
		cmd := self.commands[id]
		if cmd.Kind == KindDropTable || (cmd.Kind == KindDropColumn && !added.Has(strings.ToLower(cmd.Target))) {
			out = append(out, id)
		}
	}
	return out
}
