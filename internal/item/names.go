package item

// prefixPools holds five name prefixes per rarity tier.
var prefixPools = [...][5]string{
	RarityCommon:    {"Rusty", "Worn", "Simple", "Crude", "Plain"},
	RarityRare:      {"Sharpened", "Tempered", "Gleaming", "Balanced", "Runed"},
	RarityLegendary: {"Ancient", "Mythic", "Storm-forged", "Dragonbone", "Exalted"},
	RarityUnique:    {"Godslayer", "Worldbreaker", "Eternal", "Starfallen", "Kingmaker's"},
}

// suffixes is shared by every tier from Rare upward. Each entry carries its
// own leading space so it concatenates directly after the weapon type.
var suffixes = [...]string{
	" of Flames",
	" of Frost",
	" of Thunder",
	" of the Bear",
	" of the Wolf",
	" of the Hawk",
	" of Slaying",
	" of Ruin",
	" of Haste",
	" of the Void",
	" of Embers",
	" of the Tides",
}

var rarityFlavor = [...]string{
	RarityCommon:    "Serviceable, if unremarkable.",
	RarityRare:      "Crafted with uncommon care.",
	RarityLegendary: "Whispers of old battles cling to it.",
	RarityUnique:    "There is no other like it.",
}
