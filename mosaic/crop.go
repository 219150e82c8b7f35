package mosaic

import "image"

// CropBounds trims width and height down to whole multiples of blockSize.
func CropBounds(width, height, blockSize int) (int, int) {
	return width - width%blockSize, height - height%blockSize
}

// Blocks lists the blocks tiling the cropped width x height region, column by
// column. Remainder pixels past the last whole block are not covered.
func Blocks(width, height, blockSize int) []image.Rectangle {
	cw, ch := CropBounds(width, height, blockSize)
	cols, rows := cw/blockSize, ch/blockSize

	res := make([]image.Rectangle, 0, cols*rows)
	for i := range cols {
		for j := range rows {
			res = append(res, blockRect(i, j, blockSize))
		}
	}
	return res
}

func blockRect(i, j, blockSize int) image.Rectangle {
	left, top := i*blockSize, j*blockSize
	return image.Rect(left, top, left+blockSize, top+blockSize)
}
