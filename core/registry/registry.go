// Package registry is an ordered map from person name ("Last, First") to STR
// profile, stored as a plain unbalanced binary search tree.
//
// Tree shape depends only on insertion order. The registry is not safe for
// concurrent use; callers serialize access.
package registry

import (
	"strings"

	"strmatch-core/profile"
	"strmatch-core/str"
)

// Node is one tree slot. A node is reused when a two-child deletion copies its
// successor's key and profile into it, so its key may change over time.
type Node struct {
	key         string
	profile     *profile.Profile
	left, right *Node
}

// NewNode returns a detached leaf, for callers assembling trees by hand.
func NewNode(key string, p *profile.Profile, left, right *Node) *Node {
	return &Node{key: key, profile: p, left: left, right: right}
}

func (n *Node) Key() string               { return n.key }
func (n *Node) Profile() *profile.Profile { return n.profile }
func (n *Node) Left() *Node               { return n.left }
func (n *Node) Right() *Node              { return n.right }

// Registry owns the tree and the two unknown reads it is matched against.
type Registry struct {
	root          *Node
	firstUnknown  string
	secondUnknown string
	counter       str.Counter
}

// New returns an empty registry.
func New() *Registry { return &Registry{} }

func (r *Registry) Root() *Node        { return r.root }
func (r *Registry) SetRoot(root *Node) { r.root = root }

func (r *Registry) FirstUnknown() string      { return r.firstUnknown }
func (r *Registry) SetFirstUnknown(s string)  { r.firstUnknown = s }
func (r *Registry) SecondUnknown() string     { return r.secondUnknown }
func (r *Registry) SetSecondUnknown(s string) { r.secondUnknown = s }

// SetCounter swaps the occurrence counter used by FlagMatches (nil restores
// str.Default).
func (r *Registry) SetCounter(c str.Counter) { r.counter = c }

// Insert adds key with p. An existing key is left untouched and the new
// profile is dropped; Insert then reports false.
func (r *Registry) Insert(key string, p *profile.Profile) bool {
	if r.root == nil {
		r.root = &Node{key: key, profile: p}
		return true
	}
	cur := r.root
	for {
		switch c := strings.Compare(key, cur.key); {
		case c < 0:
			if cur.left == nil {
				cur.left = &Node{key: key, profile: p}
				return true
			}
			cur = cur.left
		case c > 0:
			if cur.right == nil {
				cur.right = &Node{key: key, profile: p}
				return true
			}
			cur = cur.right
		default:
			return false
		}
	}
}

// Lookup returns the profile stored under key.
func (r *Registry) Lookup(key string) (*profile.Profile, bool) {
	for cur := r.root; cur != nil; {
		switch c := strings.Compare(key, cur.key); {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur.profile, cur.profile != nil
		}
	}
	return nil, false
}

// Remove deletes key. Missing keys are a no-op and report false.
func (r *Registry) Remove(key string) bool {
	var parent *Node
	cur := r.root
	for cur != nil {
		c := strings.Compare(key, cur.key)
		if c == 0 {
			break
		}
		parent = cur
		if c < 0 {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	if cur == nil {
		return false
	}

	cur.profile = nil

	if cur.left == nil || cur.right == nil {
		child := cur.left
		if child == nil {
			child = cur.right
		}
		switch {
		case parent == nil:
			r.root = child
		case parent.left == cur:
			parent.left = child
		default:
			parent.right = child
		}
		return true
	}

	// Two children: pull the in-order successor's contents into cur and
	// unlink the successor instead.
	succParent := cur
	succ := cur.right
	for succ.left != nil {
		succParent = succ
		succ = succ.left
	}
	cur.key = succ.key
	cur.profile = succ.profile
	if succParent.left == succ {
		succParent.left = succ.right
	} else {
		succParent.right = succ.right
	}
	return true
}

// walkNodes visits every node breadth first, left before right, until fn
// returns false.
func (r *Registry) walkNodes(fn func(*Node) bool) {
	if r.root == nil {
		return
	}
	var q queue
	q.push(r.root)
	for !q.empty() {
		n := q.pop()
		if !fn(n) {
			return
		}
		if n.left != nil {
			q.push(n.left)
		}
		if n.right != nil {
			q.push(n.right)
		}
	}
}

// Walk visits present profiles in level order until fn returns false.
func (r *Registry) Walk(fn func(key string, p *profile.Profile) bool) {
	r.walkNodes(func(n *Node) bool {
		if n.profile == nil {
			return true
		}
		return fn(n.key, n.profile)
	})
}

// CountByInterest counts present profiles whose flag equals ofInterest.
func (r *Registry) CountByInterest(ofInterest bool) int {
	return countByInterest(r.root, ofInterest)
}

func countByInterest(n *Node, ofInterest bool) int {
	if n == nil {
		return 0
	}
	c := countByInterest(n.left, ofInterest) + countByInterest(n.right, ofInterest)
	if n.profile != nil && n.profile.OfInterest == ofInterest {
		c++
	}
	return c
}

// Len is the number of present profiles.
func (r *Registry) Len() int {
	return r.CountByInterest(true) + r.CountByInterest(false)
}

// FlagMatches marks every profile whose STR counts match the two unknown
// reads and returns how many were newly flagged. Flags are never cleared.
func (r *Registry) FlagMatches() int {
	c := r.counter
	if c == nil {
		c = str.Default
	}
	flagged := 0
	r.Walk(func(_ string, p *profile.Profile) bool {
		if p.Flag(r.firstUnknown, r.secondUnknown, c) {
			flagged++
		}
		return true
	})
	return flagged
}

// UnflaggedKeys lists the keys of unflagged profiles in level order.
func (r *Registry) UnflaggedKeys() []string {
	keys := make([]string, r.CountByInterest(false))
	i := 0
	r.Walk(func(key string, p *profile.Profile) bool {
		if !p.OfInterest {
			keys[i] = key
			i++
		}
		return true
	})
	return keys
}

// CleanupUnflagged removes every profile that was unflagged when the call
// began and returns those keys.
func (r *Registry) CleanupUnflagged() []string {
	keys := r.UnflaggedKeys()
	for _, k := range keys {
		r.Remove(k)
	}
	return keys
}

// Keys returns all keys in sorted (in-order) order.
func (r *Registry) Keys() []string {
	var keys []string
	var stack []*Node
	for cur := r.root; cur != nil || len(stack) > 0; {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.profile != nil {
			keys = append(keys, cur.key)
		}
		cur = cur.right
	}
	return keys
}

// Height is the number of levels in the tree; 0 when empty.
func (r *Registry) Height() int {
	h := 0
	level := []*Node{}
	if r.root != nil {
		level = append(level, r.root)
	}
	for len(level) > 0 {
		h++
		var next []*Node
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return h
}
