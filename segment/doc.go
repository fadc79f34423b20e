// Package segment implements the image-segmentation problem for the generic
// evolutionary loop in package ga.
//
// A ProblemInstance is built once from a source image: per-pixel RGB and
// perceptual HSV triplets, plus a PixelGraph connecting every pixel to its
// 4-connected neighbors with edge weights equal to the Euclidean distance
// between the endpoints' HSV triplets. A Genome assigns each pixel one of
// {None, Up, Down, Left, Right}; decoding the resulting directed links
// yields the segmentation, and the fitness rewards strong color boundaries
// between segments while punishing intra-segment color deviation.
//
// SegmentationGA supplies the GA policies (tournament selection, uniform
// crossover, elitist replacement) and LoadConfig reads every parameter from
// an INI file.
package segment
