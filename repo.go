package main

import (
	"context"
	"fmt"
	"log"
)

// fetchAll clones whatever package is not checked out yet. Existing
// checkouts are left alone, even if on another branch.
func (i *installer) fetchAll(ctx context.Context) error {
	var missing []*pkgDef
	for _, p := range i.req.Packages {
		if i.exists(p.dir) {
			log.Printf("%s found in %s, not fetching", p.Name, p.dir)
			continue
		}
		missing = append(missing, p)
	}
	if len(missing) == 0 {
		return nil
	}

	if i.req.Auth == authSSH {
		checkSSHAgent(i.env)
	}

	for _, p := range missing {
		if err := i.fetch(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (i *installer) fetch(ctx context.Context, p *pkgDef) error {
	log.Printf("%s not found, checking out %s (branch %s)...", p.Name, p.url(i.req.Auth), p.Branch)

	err := i.runIn(ctx, i.req.BuildPath, "git", "clone", "--branch", p.Branch, p.url(i.req.Auth), p.dir)
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", p.Name, err)
	}
	return nil
}
