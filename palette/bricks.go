package palette

// Bricks is the built-in brick color table. Declaration order is part of the
// matching contract.
var Bricks = Palette{
	{ID: 4210719, Name: "Dark stone grey", Color: RGB{99, 95, 97}},
	{ID: 302426, Name: "Black", Color: RGB{27, 42, 52}},
	{ID: 4184108, Name: "Earth Blue", Color: RGB{32, 58, 86}},
	{ID: 302424, Name: "Bright Yellow", Color: RGB{245, 205, 47}},
	{ID: 4211399, Name: "Medium Stone Grey", Color: RGB{163, 162, 164}},
	{ID: 4221744, Name: "Reddish Brown", Color: RGB{105, 64, 39}},
	{ID: 302423, Name: "Bright Blue", Color: RGB{13, 105, 171}},
	{ID: 302421, Name: "Bright Red", Color: RGB{196, 40, 27}},
	{ID: 302401, Name: "White", Color: RGB{242, 243, 242}},
	{ID: 4159553, Name: "Brick Yellow", Color: RGB{215, 197, 153}},
	{ID: 4524929, Name: "Bright Orange", Color: RGB{218, 133, 64}},
	{ID: 302428, Name: "Dark Green", Color: RGB{40, 127, 70}},
}
