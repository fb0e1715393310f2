// Package fixtures holds rules markdown used across package tests
package fixtures

import (
	"testing/fstest"
)

// Gouge is a standalone ability with a table, power roll, after effect and
// a cost option
const Gouge = `---
item_id: gouge
item_name: Gouge
item_index: "03"
class: fury
level: 1
type: ability/fury/1st-level-feature
action_type: Main action
keywords:
  - Melee
  - Strike
  - Weapon
source: mcdm.heroes.v1
---

###### Gouge

*You rake your foe with a brutal strike.*

| **Melee, Strike, Weapon** | **Main action** |
| ------------------------- | --------------: |
| **📏 Melee 1**            | **🎯 One creature** |

**Power Roll + Might:**

- **≤11:** 3 + M damage
- **12-16:** 5 + M damage; target is bleeding (save ends)
- **17+:** 8 + M damage; target is weakened

**Effect:** You shift 1 square.

**Spend 2 Ferocity:** The target is also slowed (save ends).
`

// BackBlast is a triggered ability without a power roll
const BackBlast = `---
item_id: back-blast-3-wrath
item_name: Back Blast
class: censor
level: 1
cost_amount: 3
cost_resource: Wrath
action_type: Triggered
---

###### Back Blast (3 Wrath)

| **Magic, Ranged** | **Triggered** |
| --- | --- |
| **📏 Ranged 10** | **🎯 The triggering creature** |

**Trigger:** A creature within distance deals damage to an ally.

**Effect:** The target takes holy damage equal to twice your Presence score.

**Persistent 1:** The target is also frightened until the end of their next turn.
`

// Rally has an effect on both sides of its power roll and a mark benefit
const Rally = `---
item_id: rally
item_name: Rally
class: tactician
level: 2
---

###### Rally

| **Ranged** | **Triggered** |
| --- | --- |
| **📏 Ranged 5** | **🎯 One ally** |

**Trigger:** An ally within 5 squares is attacked.

**Effect:** You move up to your speed.

**Power Roll + Reason:**

- **≤11:** 2 damage
- **12-16:** 4 damage
- **17+:** 6 damage

**Effect:** The ally gains 2 surges.

**Mark Benefit:** Your marked target takes a bane on their next strike.
`

// CallThePack is a standalone ability that summons a creature
const CallThePack = `---
item_id: call-the-pack
item_name: Call the Pack
class: fury
level: 5
type: ability
---

###### Call the Pack

| **Magic** | **Main action** |
| --- | --- |
| **📏 Self** | **🎯 Self** |

**Effect:** A wolf appears in an unoccupied space adjacent to you.

` + WolfStatblock

// WolfStatblock is a blockquoted creature stat block with one trait and one
// ability
const WolfStatblock = `> ###### Wolf Statblock
>
> **Wolf**
>
> | **Animal**<br/> Keywords | - | **Level 1** | **Minion Harrier** | **EV 3** |
> | --- | --- | --- | --- | --- |
> | **Medium**<br/> Size | **7**<br/> Speed | **2x your level**<br/> Stamina | **0**<br/> Stability | **2**<br/> Free Strike |
> | **-**<br/> Immunity | **-**<br/> Movement | | **-**<br/> With Captain | **-**<br/> Weakness |
> | **+2**<br/> Might | **+1**<br/> Agility | **-2**<br/> Reason | **0**<br/> Intuition | **-1**<br/> Presence |
>
> > **Pack Tactics**
> >
> > The wolf gains an edge on strikes against a target adjacent to one of its allies.
>
> > **Bite**
> >
> > | **Melee, Strike** | **Main action** |
> > | --- | --- |
> > | **📏 Melee 1** | **🎯 One creature** |
> >
> > **Power Roll + Might:**
> >
> > - **≤11:** 2 damage
> > - **12-16:** 4 damage
> > - **17+:** 5 damage
`

// Judgment is a class feature carrying two embedded abilities
const Judgment = `---
item_id: judgment
item_name: Judgment
class: censor
level: 1
type: feature/censor/1st-level-feature
---

#### Judgment

You utter a judgment against a foe. See [Conditions](conditions.md).

<!-- art pending -->

> ###### Judgment
>
> *You cast judgment upon a foe.*
>
> | **Magic, Ranged** | **Maneuver** |
> | --- | --- |
> | **📏 Ranged 10** | **🎯 One enemy** |
>
> **Effect:** The target is judged by you until the end of the encounter.
>
> **Spend 1 Wrath:** You can take the Judgment maneuver as a free triggered action.

> ###### Smite (3 Wrath)
>
> | **Magic, Melee, Strike** | **Main action** |
> | --- | --- |
> | **📏 Melee 1** | **🎯 One creature** |
>
> **Power Roll + Presence:**
>
> - **≤11:** 4 + P holy damage
> - **12-16:** 6 + P holy damage
> - **17+:** 9 + P holy damage; the target is frightened (save ends)
`

// NoFrontMatter is skipped as missing front matter
const NoFrontMatter = `###### Loose Notes

**Effect:** Nothing to see here.
`

// ProseOnly has front matter but nothing to extract
const ProseOnly = `---
item_id: lore
item_name: Lore
---

Some history of the timescape.
`

// Tree returns a rules directory holding every fixture. broken.md is not
// valid UTF-8.
func Tree() fstest.MapFS {
	return fstest.MapFS{
		"abilities/fury/gouge.md":         {Data: []byte(Gouge)},
		"abilities/fury/call-the-pack.md": {Data: []byte(CallThePack)},
		"abilities/censor/back-blast.md":  {Data: []byte(BackBlast)},
		"abilities/tactician/rally.md":    {Data: []byte(Rally)},
		"features/censor/judgment.md":     {Data: []byte(Judgment)},
		"notes/loose.md":                  {Data: []byte(NoFrontMatter)},
		"notes/lore.md":                   {Data: []byte(ProseOnly)},
		"notes/broken.md":                 {Data: []byte{0xff, 0xfe, 0x00}},
		"notes/readme.txt":                {Data: []byte("not markdown")},
	}
}
