package entity

import (
	"fmt"
	"log"
	"maps"

	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/levels"
)

// LoadLevelToWorld creates one entity per layer, a bounds entity for
// bounded levels and one prefab instance per spawn point. Spawns whose
// prefab fails to build are logged and skipped.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world or level is nil")
	}

	var created []ecs.Entity
	for i, ld := range lvl.Layers {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TileLayerComponent.Kind(), &component.TileLayer{
			Layer:     lvl.BuildLayer(i),
			Collision: ld.Physics,
		}); err != nil {
			return created, err
		}
		created = append(created, e)
	}

	if lvl.Bounded {
		e := ecs.CreateEntity(w)
		size := lvl.WorldSize()
		if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
			Bounds: common.NewRect(0, 0, size.X, size.Y),
		}); err != nil {
			return created, err
		}
		created = append(created, e)
	}

	for _, spawn := range lvl.Entities {
		e, err := SpawnPrefab(w, spawn)
		if err != nil {
			log.Printf("entity: level %q: spawn %s at (%.0f,%.0f): %v", lvl.Name, spawn.Type, spawn.X, spawn.Y, err)
			continue
		}
		created = append(created, e)
	}

	return created, nil
}

// SpawnPrefab builds spawn.Type at the spawn position. Props are merged over
// the prefab's behavior params.
func SpawnPrefab(w *ecs.World, spawn levels.Entity) (ecs.Entity, error) {
	e, err := BuildEntity(w, spawn.Type)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, spawn.X, spawn.Y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpawnPointComponent.Kind(), &component.SpawnPoint{X: spawn.X, Y: spawn.Y}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if b, ok := ecs.Get(w, e, component.BehaviorComponent.Kind()); ok && len(spawn.Props) > 0 {
		params := maps.Clone(b.Params)
		maps.Copy(params, spawn.Props)
		b.Params = params
	}
	return e, nil
}
