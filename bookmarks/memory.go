package bookmarks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alwitt/alcove/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/google/uuid"
)

// memTreeNode in-memory tree node
type memTreeNode struct {
	id       string
	kind     models.NodeKindENUMType
	title    string
	url      string
	parent   *memTreeNode
	children []*memTreeNode
}

// treeEvent pending change notification, dispatched outside the store lock
type treeEvent struct {
	created          *models.TreeNode
	changedNodeID    string
	movedNodeID      string
	movedOldParentID string
	movedNewParentID string
	removedNodeID    string
	removedParentID  string
}

// InMemoryTreeStore an in-process reference implementation of `TreeStore`
//
// It backs unit tests and demos where no live browser is available. Change
// events fire synchronously on the calling goroutine, after the store lock is
// released so listeners may call back into the store.
type InMemoryTreeStore struct {
	goutils.Component

	lock      sync.Mutex
	root      *memTreeNode
	nodes     map[string]*memTreeNode
	listeners []TreeEventListener

	// createsUntilFailure when >= 0, count down on each create and fail once zero
	createsUntilFailure int
}

/*
NewInMemoryTreeStore define a new in-memory tree store

The store starts with a single root folder; nodes created without an explicit
parent are appended under it (the "default location").

	@return store instance
*/
func NewInMemoryTreeStore() *InMemoryTreeStore {
	logTags := log.Fields{"package": "alcove", "module": "bookmarks", "component": "memory-tree-store"}

	root := &memTreeNode{
		id:    uuid.NewString(),
		kind:  models.NodeKindFolder,
		title: "Bookmarks",
	}

	return &InMemoryTreeStore{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		root:                root,
		nodes:               map[string]*memTreeNode{root.id: root},
		createsUntilFailure: -1,
	}
}

// RootID the node ID of the store's root folder / default location
func (s *InMemoryTreeStore) RootID() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.root.id
}

// FailCreateAfter arrange for the Nth create call from now to fail.
// Used to exercise materialization rollback paths.
func (s *InMemoryTreeStore) FailCreateAfter(successfulCreates int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.createsUntilFailure = successfulCreates
}

// snapshot convert a node into its external representation
func (s *InMemoryTreeStore) snapshot(node *memTreeNode, withChildren bool) models.TreeNode {
	result := models.TreeNode{
		ID:    node.id,
		Kind:  node.kind,
		Title: node.title,
		URL:   node.url,
	}
	if node.parent != nil {
		result.ParentID = node.parent.id
		for idx, sibling := range node.parent.children {
			if sibling == node {
				result.Index = idx
				break
			}
		}
	}
	if withChildren {
		for _, child := range node.children {
			result.Children = append(result.Children, s.snapshot(child, true))
		}
	}
	return result
}

// dispatch fan out pending events to the current listeners
func (s *InMemoryTreeStore) dispatch(ctx context.Context, events []treeEvent) {
	s.lock.Lock()
	targets := make([]TreeEventListener, len(s.listeners))
	copy(targets, s.listeners)
	s.lock.Unlock()

	for _, event := range events {
		for _, listener := range targets {
			switch {
			case event.created != nil:
				listener.HandleNodeCreated(ctx, *event.created)
			case event.changedNodeID != "":
				listener.HandleNodeChanged(ctx, event.changedNodeID)
			case event.movedNodeID != "":
				listener.HandleNodeMoved(
					ctx, event.movedNodeID, event.movedOldParentID, event.movedNewParentID,
				)
			case event.removedNodeID != "":
				listener.HandleNodeRemoved(ctx, event.removedNodeID, event.removedParentID)
			}
		}
	}
}

/*
Create create a new node

	@param ctx context.Context - execution context
	@param details CreateDetails - node creation parameters
	@return the created node
*/
func (s *InMemoryTreeStore) Create(
	ctx context.Context, details CreateDetails,
) (models.TreeNode, error) {
	s.lock.Lock()

	if s.createsUntilFailure == 0 {
		s.lock.Unlock()
		return models.TreeNode{}, fmt.Errorf("tree store rejected the create call")
	}
	if s.createsUntilFailure > 0 {
		s.createsUntilFailure--
	}

	parent := s.root
	if details.ParentID != nil {
		known, ok := s.nodes[*details.ParentID]
		if !ok {
			s.lock.Unlock()
			return models.TreeNode{}, fmt.Errorf("parent node %s unknown", *details.ParentID)
		}
		if known.kind != models.NodeKindFolder {
			s.lock.Unlock()
			return models.TreeNode{}, fmt.Errorf("parent node %s is not a folder", *details.ParentID)
		}
		parent = known
	}

	newNode := &memTreeNode{
		id:     uuid.NewString(),
		kind:   details.Kind,
		title:  details.Title,
		url:    details.URL,
		parent: parent,
	}

	position := len(parent.children)
	if details.Index != nil && *details.Index >= 0 && *details.Index < len(parent.children) {
		position = *details.Index
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[position+1:], parent.children[position:])
	parent.children[position] = newNode
	s.nodes[newNode.id] = newNode

	result := s.snapshot(newNode, false)
	s.lock.Unlock()

	s.dispatch(ctx, []treeEvent{{created: &result}})
	return result, nil
}

/*
Get fetch a single node without children

	@param ctx context.Context - execution context
	@param nodeID string - node ID
	@return the node
*/
func (s *InMemoryTreeStore) Get(_ context.Context, nodeID string) (models.TreeNode, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return models.TreeNode{}, fmt.Errorf("node %s unknown", nodeID)
	}
	return s.snapshot(node, false), nil
}

/*
GetSubTree fetch a node with its full descendant tree

	@param ctx context.Context - execution context
	@param nodeID string - root node ID
	@return the subtree
*/
func (s *InMemoryTreeStore) GetSubTree(_ context.Context, nodeID string) (models.TreeNode, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return models.TreeNode{}, fmt.Errorf("node %s unknown", nodeID)
	}
	return s.snapshot(node, true), nil
}

/*
Search find nodes whose title or URL contains the query

	@param ctx context.Context - execution context
	@param query string - search text
	@return matching nodes
*/
func (s *InMemoryTreeStore) Search(_ context.Context, query string) ([]models.TreeNode, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	needle := strings.ToLower(query)
	result := []models.TreeNode{}
	for _, node := range s.nodes {
		if node == s.root || node.kind == models.NodeKindSeparator {
			continue
		}
		if strings.Contains(strings.ToLower(node.title), needle) ||
			strings.Contains(strings.ToLower(node.url), needle) {
			result = append(result, s.snapshot(node, false))
		}
	}
	return result, nil
}

/*
RemoveTree remove a node and its entire subtree

	@param ctx context.Context - execution context
	@param nodeID string - root node ID of the subtree to remove
*/
func (s *InMemoryTreeStore) RemoveTree(ctx context.Context, nodeID string) error {
	s.lock.Lock()

	node, ok := s.nodes[nodeID]
	if !ok {
		s.lock.Unlock()
		return fmt.Errorf("node %s unknown", nodeID)
	}
	if node == s.root {
		s.lock.Unlock()
		return fmt.Errorf("refusing to remove the tree root")
	}

	parentID := node.parent.id
	s.detachLocked(node)
	s.forgetLocked(node)
	s.lock.Unlock()

	s.dispatch(ctx, []treeEvent{{removedNodeID: nodeID, removedParentID: parentID}})
	return nil
}

// detachLocked remove a node from its parent's child list
func (s *InMemoryTreeStore) detachLocked(node *memTreeNode) {
	siblings := node.parent.children
	for idx, sibling := range siblings {
		if sibling == node {
			node.parent.children = append(siblings[:idx], siblings[idx+1:]...)
			break
		}
	}
}

// forgetLocked drop a node and all its descendants from the ID index
func (s *InMemoryTreeStore) forgetLocked(node *memTreeNode) {
	delete(s.nodes, node.id)
	for _, child := range node.children {
		s.forgetLocked(child)
	}
}

/*
Update change a node's title or URL. Simulates a user edit.

	@param ctx context.Context - execution context
	@param nodeID string - node ID
	@param title string - new title
	@param url string - new URL
*/
func (s *InMemoryTreeStore) Update(ctx context.Context, nodeID string, title, url string) error {
	s.lock.Lock()

	node, ok := s.nodes[nodeID]
	if !ok {
		s.lock.Unlock()
		return fmt.Errorf("node %s unknown", nodeID)
	}
	node.title = title
	node.url = url
	s.lock.Unlock()

	s.dispatch(ctx, []treeEvent{{changedNodeID: nodeID}})
	return nil
}

/*
Move reparent or reposition a node. Simulates a user edit.

	@param ctx context.Context - execution context
	@param nodeID string - node ID
	@param newParentID string - destination folder node ID
	@param index int - destination position, append when out of range
*/
func (s *InMemoryTreeStore) Move(
	ctx context.Context, nodeID string, newParentID string, index int,
) error {
	s.lock.Lock()

	node, ok := s.nodes[nodeID]
	if !ok {
		s.lock.Unlock()
		return fmt.Errorf("node %s unknown", nodeID)
	}
	newParent, ok := s.nodes[newParentID]
	if !ok {
		s.lock.Unlock()
		return fmt.Errorf("node %s unknown", newParentID)
	}
	if newParent.kind != models.NodeKindFolder {
		s.lock.Unlock()
		return fmt.Errorf("node %s is not a folder", newParentID)
	}

	oldParentID := node.parent.id
	s.detachLocked(node)
	node.parent = newParent

	position := len(newParent.children)
	if index >= 0 && index < len(newParent.children) {
		position = index
	}
	newParent.children = append(newParent.children, nil)
	copy(newParent.children[position+1:], newParent.children[position:])
	newParent.children[position] = node
	s.lock.Unlock()

	s.dispatch(ctx, []treeEvent{{
		movedNodeID: nodeID, movedOldParentID: oldParentID, movedNewParentID: newParentID,
	}})
	return nil
}

/*
Subscribe register a change event listener

	@param listener TreeEventListener - the listener
*/
func (s *InMemoryTreeStore) Subscribe(listener TreeEventListener) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.listeners = append(s.listeners, listener)
}

/*
Unsubscribe remove a previously registered change event listener

	@param listener TreeEventListener - the listener
*/
func (s *InMemoryTreeStore) Unsubscribe(listener TreeEventListener) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for idx, known := range s.listeners {
		if known == listener {
			s.listeners = append(s.listeners[:idx], s.listeners[idx+1:]...)
			return
		}
	}
}
