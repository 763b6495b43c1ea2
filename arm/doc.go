// Package arm models the 8-arm rotating configuration whose tip draws a tour
// over the 257×257 lattice [-128,128]².
//
// What:
//
//   - Config packs the eight arm angles into one uint64 (3,3,4,5,6,7,8,9 bits).
//     Arm k has length L_k ∈ {1,1,2,4,8,16,32,64} and its angle counts unit
//     steps along the perimeter of the square of half-size L_k (modulus 8·L_k).
//   - Pos, ArmPos, CenterBox and BoundingBox give the tip and the nested boxes
//     reachable by the smaller arms.
//   - AnglesToReach and PathToReach compute the rotations that bring a lattice
//     point inside an arm's bounding box, and the 128 extremal configurations
//     sitting on that point.
//   - Penalty, Loss and DTorus measure the cost of moving from one
//     configuration to the next.
//
// Why:
//
//   - A step of the arm is valid when every angle changes by at most one unit;
//     its cost is the square root of the number of arms that moved. All search
//     components of this module speak in terms of Config values.
//
// Complexity:
//
//   - Pos, CenterBox: O(8). Add, Sub, IsValidStep: O(8).
//   - AnglesToReach: O(1) after a one-time O(Σ(4L_k+1)²·8L_k) reach-table build.
//   - PathToReach: O(128·8).
//
// Errors:
//
//   - ErrNotCorner: FromCorner called with a point that is neither the origin nor a corner.
//   - ErrNotOnPerimeter: an arm position does not lie on its square.
//   - ErrMalformed: a textual configuration could not be parsed.
//   - ErrDegenerate: PathToReach asked for the point already under arms 1..7.
//   - ErrUnreachable: PathToReach asked for a point out of reach.
package arm
