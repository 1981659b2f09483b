package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/zaloga/internal/inventory"
)

type entry struct {
	ID   string
	Name string
}

// catalog adapts item types and departments to one set of commands.
type catalog struct {
	noun    string
	entries func() []entry
	add     func(ctx context.Context, name string) (string, error)
	edit    func(ctx context.Context, id, name string) (bool, error)
	delete  func(ctx context.Context, id string) bool
}

func (a *app) cmdType(ctx context.Context, args []string) error {
	return a.runCatalog(ctx, "type", args, catalog{
		noun: "item type",
		entries: func() []entry {
			types := a.inv.ItemTypes()
			entries := make([]entry, len(types))
			for i, t := range types {
				entries[i] = entry(t)
			}
			return entries
		},
		add: func(ctx context.Context, name string) (string, error) {
			t, err := a.inv.AddItemType(ctx, name)
			return t.ID, err
		},
		edit:   a.inv.EditItemType,
		delete: a.inv.DeleteItemType,
	})
}

func (a *app) cmdDept(ctx context.Context, args []string) error {
	return a.runCatalog(ctx, "dept", args, catalog{
		noun: "department",
		entries: func() []entry {
			depts := a.inv.Departments()
			entries := make([]entry, len(depts))
			for i, d := range depts {
				entries[i] = entry(d)
			}
			return entries
		},
		add: func(ctx context.Context, name string) (string, error) {
			d, err := a.inv.AddDepartment(ctx, name)
			return d.ID, err
		},
		edit:   a.inv.EditDepartment,
		delete: a.inv.DeleteDepartment,
	})
}

func (a *app) runCatalog(ctx context.Context, cmd string, args []string, c catalog) error {
	usage := cmd + " list|add <name>|edit <id|name> <new name>|delete <id|name>"
	sub, args, err := subcommand(args, usage)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		tw := newTable(a.out)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, e := range c.entries() {
			fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.Name)
		}
		return tw.Flush()

	case "add":
		if len(args) == 0 {
			return errors.New("usage: zaloga " + usage)
		}
		name := strings.Join(args, " ")
		if _, err := c.add(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added %s %s.\n", c.noun, strings.TrimSpace(name))
		return nil

	case "edit":
		if len(args) < 2 {
			return errors.New("usage: zaloga " + usage)
		}
		id, err := resolveEntry(c, args[0])
		if err != nil {
			return err
		}
		if _, err := c.edit(ctx, id, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Renamed %s %s.\n", c.noun, args[0])
		return nil

	case "delete":
		if len(args) != 1 {
			return errors.New("usage: zaloga " + usage)
		}
		id, err := resolveEntry(c, args[0])
		if err != nil {
			return err
		}
		c.delete(ctx, id)
		fmt.Fprintf(a.out, "Deleted %s %s.\n", c.noun, args[0])
		return nil

	default:
		return fmt.Errorf("unknown %s command %q, usage: zaloga %s", cmd, sub, usage)
	}
}

// resolveEntry matches ref against ids first, then names.
func resolveEntry(c catalog, ref string) (string, error) {
	entries := c.entries()
	for _, e := range entries {
		if e.ID == ref {
			return e.ID, nil
		}
	}
	for _, e := range entries {
		if e.Name == ref {
			return e.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no %s %q", inventory.ErrInvalidInput, c.noun, ref)
}
